// Package histo builds simple histograms over fixed dividers.
package histo

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Data is a histogram. The bin i counts the values v with dividers[i] <= v < dividers[i+1].
// Values outside the dividers are not counted.
type Data struct {
	id         int
	normalized bool
	total      int
	dividers   []float64
	histo      []float64
}

type dataJSON struct {
	ID         int       `json:"id"`
	Normalized bool      `json:"normalized"`
	Total      int       `json:"total"`
	Dividers   []float64 `json:"dividers"`
	Histo      []float64 `json:"histo"`
}

func (D *Data) MarshalJSON() ([]byte, error) {
	return json.Marshal(dataJSON{D.id, D.normalized, D.total, D.dividers, D.histo})
}

func (D *Data) UnmarshalJSON(b []byte) error {
	var a dataJSON
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if len(a.Dividers) < 2 || len(a.Histo) != len(a.Dividers)-1 {
		return fmt.Errorf("pdbrecon/histo: %d dividers for %d bins", len(a.Dividers), len(a.Histo))
	}
	D.id = a.ID
	D.normalized = a.Normalized
	D.total = a.Total
	D.dividers = a.Dividers
	D.histo = a.Histo
	return nil
}

// ID returns the ID of the histogram
func (D *Data) ID() int {
	return D.id
}

// Total returns the number of values counted in the histogram.
func (D *Data) Total() int {
	return D.total
}

// String prints a -hopefully- pretty string representation of
// the histogram. The representation uses 3 lines of text.
func (D *Data) String() string {
	ret := fmt.Sprintf("ID: %d, Normalized: %v, TotalData: %d\n", D.id, D.normalized, D.total)
	d := make([]string, 0, len(D.histo))
	h := make([]string, 0, len(D.histo))
	for i, v := range D.histo {
		d = append(d, fmt.Sprintf("%4.2f-%4.2f", D.dividers[i], D.dividers[i+1]))
		h = append(h, fmt.Sprintf("%9.3f", v))
	}
	return ret + fmt.Sprintf("%s\n%s", strings.Join(d, " "), strings.Join(h, " "))
}

// Uniform returns n+1 dividers splitting [min,max] in n bins of the same width.
func Uniform(min, max float64, n int) []float64 {
	return floats.Span(make([]float64, n+1), min, max)
}

// NewData returns a new histogram from the dividers and rawdata given.
// rawdata can be nil. In that case, an empty histogram is created.
// if an ID for the histogram is given, it will be set. If not, the ID will
// be set to -1. It panics if less than 2 dividers are given.
func NewData(dividers []float64, rawdata []float64, ID ...int) *Data {
	if len(dividers) < 2 {
		panic("pdbrecon/histo.NewData: At least 2 dividers are needed")
	}
	d := new(Data)
	d.dividers = append([]float64(nil), dividers...)
	d.histo = make([]float64, len(dividers)-1)
	if rawdata != nil {
		d.ReHisto(d.dividers, rawdata)
	}
	d.id = -1
	if len(ID) > 0 {
		d.id = ID[0]
	}
	return d
}

// AddData adds the given data point(s) to the histogram
func (D *Data) AddData(point ...float64) {
	norma := D.normalized
	if norma {
		D.UnNormalize()
	}
	last := len(D.dividers) - 1
	for _, v := range point {
		if v < D.dividers[0] || v >= D.dividers[last] {
			continue
		}
		//the index of the first divider larger than v
		j := sort.Search(len(D.dividers), func(i int) bool { return D.dividers[i] > v })
		D.histo[j-1]++
		D.total++
	}
	//if it was normalized, we should return it to that state
	if norma {
		D.Normalize()
	}
}

// Normalized Returns true if the histogram is normalized
func (D *Data) Normalized() bool {
	return D.normalized
}

// Normalize normalizes the histogram
func (D *Data) Normalize() {
	D.normaunnorma(true)
}

// UnNormalize un-normalizes the histogram
func (D *Data) UnNormalize() {
	D.normaunnorma(false)
}

func (D *Data) normaunnorma(normalize bool) {
	if D.total <= 0 || D.normalized == normalize {
		return
	}
	n := float64(D.total)
	D.normalized = false
	if normalize {
		n = 1 / float64(D.total)
		D.normalized = true
	}
	floats.Scale(n, D.histo)
}

// View returns the bins of the histogram. Changes to the slice change the histogram.
func (D *Data) View() []float64 {
	return D.histo
}

// Sum returns the sum of all bins.
func (D *Data) Sum() float64 {
	return floats.Sum(D.histo)
}

// ReHisto replaces the contents of the histogram with that of rawdata, binned
// with the given dividers. rawdata is not modified.
func (D *Data) ReHisto(dividers, rawdata []float64) {
	data := append([]float64(nil), rawdata...)
	sort.Float64s(data)
	//stat.Histogram just panics instead of omitting the values that are off limits
	//so we remove them here before the call.
	maxi := sort.SearchFloat64s(data, dividers[len(dividers)-1])
	mini := sort.SearchFloat64s(data, dividers[0])
	data = data[mini:maxi]
	D.dividers = append(D.dividers[:0], dividers...)
	D.total = len(data)
	D.normalized = false
	D.histo = stat.Histogram(nil, D.dividers, data, nil)
}
