package sentence

import (
	"bytes"
	_ "embed"
)

//go:embed data/sample.csv
var sampleCSV []byte

// Sample returns the built-in sentence set used when no other source is
// available.
func Sample() []Item {
	res, err := ParseCSV(bytes.NewReader(sampleCSV))
	if err != nil {
		panic("sentence: embedded sample is not valid CSV: " + err.Error())
	}
	return res.Items
}
