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

/*Package lephar drives the LePhar docking suite (LeDock, LePro and QueryDB) from Go.

The programs themselves are not part of this library; they must be obtained from
http://www.lephar.com and installed under the directory given by the LEPHAR_HOME
environment variable, in a bin subdirectory, with the names used by the distributed
binaries (ledock_linux_x86, lepro_linux_x86, etc.).

The root package contains the objects that flow between the different steps
(small molecules, docking poses, pockets and sets of molecules), the
machinery to locate and run the external programs, and a few file utilities
shared by the subpackages:

    ledock    Docking of a ligand library on a whole receptor or on a set of pockets.
    lepro     Receptor preparation.
    convert   Format conversion with Open Babel, and mol2 helpers.
    filter    Ligand filtering with QueryDB.
    cluster   Maximum common substructure clustering of ligands.
    dockplot  Score statistics and histograms for docked sets.

Please cite the LeDock evaluation paper (doi:10.1039/C6CP01555G) if you use
LeDock through this library.*/
package lephar
