/*
 * doc.go, part of pdbrecon.
 *
 * Copyright 2015 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
Package v3 implements a Matrix type representing a row-major 3D matrix (i.e. a Nx3 matrix).
The v3.Matrix is used to represent the cartesian coordinates of sets of atoms in pdbrecon,
one row per atom, in the order in which the atoms were read.
It is based on gonum's Dense type, with some additional restrictions
because of the fixed number of columns.

Unlike a gonum Dense, a Matrix can have zero rows. gonum refuses to build empty
matrices, so an empty Matrix carries a nil Dense, and the methods in this package
take care of that case. Methods promoted from the embedded Dense must not be
called on an empty Matrix.
*/
package v3
