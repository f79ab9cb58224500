/*
 * interfaces.go, part of pdbrecon.
 *
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

package recon

import "fmt"

//Errors

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Each call returns the decoration slice resulting from the call. If passed an empty string, it just returns the current value.
}

// IOError is the error returned when a file can't be opened, read, created or written.
// The underlying error from the os or io packages is available through Unwrap.
type IOError struct {
	filename string
	err      error
	deco     []string
}

func (err *IOError) Error() string {
	return fmt.Sprintf("pdbrecon: I/O error with file %s: %s", err.filename, err.err.Error())
}

// Decorate adds new information to the error
func (err *IOError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the file to which the error is associated
func (err *IOError) FileName() string { return err.filename }

// Unwrap returns the underlying error
func (err *IOError) Unwrap() error { return err.err }

// ParseError is returned when an ATOM record doesn't contain valid coordinates
// in the expected columns.
type ParseError struct {
	filename string
	line     int    //1-based
	columns  string //1-based, inclusive, as in the PDB format description
	err      error
	deco     []string
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("pdbrecon: can't parse coordinates in columns %s of line %d in file %s: %s", err.columns, err.line, err.filename, err.err.Error())
}

// Decorate adds new information to the error
func (err *ParseError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the file to which the error is associated
func (err *ParseError) FileName() string { return err.filename }

// Line returns the line of the file, starting from 1, where the error was found.
func (err *ParseError) Line() int { return err.line }

// Unwrap returns the underlying error, normally a *strconv.NumError.
func (err *ParseError) Unwrap() error { return err.err }

// CError is the general error for the package, for errors that are not related to files.
type CError struct {
	msg  string
	deco []string
}

func (err CError) Error() string { return err.msg }

// Decorate adds new information to the error
func (err CError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// errDecorate is a helper function that asserts that the error
// implements Error and decorates the error with the caller's name before returning it.
// If used with a non-Error error, it will cause a panic.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}
