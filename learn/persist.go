/*
 * persist.go, part of pdbrecon.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

package learn

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/rmera/pdbrecon/nn"
)

// modelJSON keeps the scaler and the network in the same document, so
// they are always written and read together. The network layers are stored
// in anynet's binary serialization, inside the JSON.
type modelJSON struct {
	Scaler *MinMaxScaler `json:"scaler"`
	Net    *nn.Network   `json:"network"`
}

// Encode writes M as zstd-compressed JSON to w.
func (M *Model) Encode(w io.Writer) error {
	z, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return Error{"Can't start compressor: " + err.Error(), "", []string{"Encode"}, true}
	}
	if err = json.NewEncoder(z).Encode(modelJSON{M.scaler, M.net}); err != nil {
		z.Close()
		return Error{"Can't encode model: " + err.Error(), "", []string{"Encode"}, true}
	}
	if err = z.Close(); err != nil {
		return Error{"Can't finish compressed stream: " + err.Error(), "", []string{"Encode"}, true}
	}
	return nil
}

// Decode reads a Model written by Encode from r.
func Decode(r io.Reader) (*Model, error) {
	z, err := zstd.NewReader(r)
	if err != nil {
		return nil, Error{"Can't start decompressor: " + err.Error(), "", []string{"Decode"}, true}
	}
	defer z.Close()
	var j modelJSON
	if err = json.NewDecoder(z).Decode(&j); err != nil {
		return nil, Error{"Can't decode model: " + err.Error(), "", []string{"Decode"}, true}
	}
	if !j.Scaler.Fitted() || j.Net == nil {
		return nil, Error{"Model without a fitted scaler or a network", "", []string{"Decode"}, true}
	}
	if in, out := j.Net.Dims(); in != j.Scaler.Features() || out != 3 {
		return nil, Error{fmt.Sprintf("Scaler for %d columns, network from %d to %d units", j.Scaler.Features(), in, out), "", []string{"Decode"}, true}
	}
	if !j.Net.Finalized() {
		return nil, Error{"Network still has batch normalization layers", "", []string{"Decode"}, true}
	}
	return &Model{scaler: j.Scaler, net: j.Net}, nil
}

// Save writes M to a new file with the given name. If the file exists it will be overwritten.
func (M *Model) Save(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return Error{err.Error(), name, []string{"Save"}, true}
	}
	if err = M.Encode(f); err != nil {
		f.Close()
		err2 := err.(Error)
		err2.filename = name
		return errDecorate(err2, "Save")
	}
	if err = f.Close(); err != nil {
		return Error{err.Error(), name, []string{"Save"}, true}
	}
	return nil
}

// Load reads a Model from the file name, written by Save.
func Load(name string) (*Model, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, Error{err.Error(), name, []string{"Load"}, true}
	}
	defer f.Close()
	M, err := Decode(f)
	if err != nil {
		err2 := err.(Error)
		err2.filename = name
		return nil, errDecorate(err2, "Load")
	}
	return M, nil
}

//Errors

// errDecorate is a helper function that asserts that the error
// is an Error and decorates it with the caller's name before returning it.
// If used with any other error, it will cause a panic.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}

// Error is the error type for the learn package.
type Error struct {
	message  string
	filename string //the file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	if err.filename != "" {
		return "pdbrecon/learn: file " + err.filename + ": " + err.message
	}
	return "pdbrecon/learn: " + err.message
}

// Decorate adds new information to the error
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the file associated to the error, if any.
func (err Error) FileName() string { return err.filename }

// Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }
