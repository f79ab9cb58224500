/*
 * doc.go, part of pdbrecon.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
 */

/*
Package recon is the main package of pdbrecon. It reads the atomic coordinates of a
protein from a PDB file, builds the three coordinate "views" used to train a
reconstruction model, and writes reconstructed coordinates back in PDB format.

	**pdbrecon Capabilities**

	Reads the ATOM coordinates of a PDB file (plain or gzipped) into a v3.Matrix.

	Builds the identity, permutation and axis flip views of a set of coordinates,
	and stacks them into training data.

	Writes a set of coordinates as PDB ATOM records.

The model itself lives in the learn and nn packages, the plots in chemplot, and
the full pipeline in cmd/pdbrecon.
*/
package recon
