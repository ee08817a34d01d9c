/*
 * doc.go, part of golephar.
 *
 *
 * Copyright 2026 The golephar authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

/*Package ledock docks libraries of small molecules on a receptor with LeDock.

A docking run (DockJob) goes through the following steps, strictly in this
order for each pocket and batch of ligands:

	convert        ligands are converted to mol2 and split in batches (once for all pockets)
	write-params   a dock.in file is written in the pocket/batch working directory
	invoke-binary  LeDock runs with dock.in as its only argument
	split          LeDock's split mode extracts one PDB file per pose from each .dok file
	post-process   the pose files get the PDB columns LeDock leaves out, and their scores are parsed
	assemble       poses are collected in one set of molecules

Each pocket and batch has its own working directory, so they are run concurrently.
The pieces (Batches, DockParams, Handle, SplitOutputs, Assembler) can also be used
on their own.*/
package ledock
