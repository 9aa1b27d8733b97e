package main

import (
	"strconv"
)

// floatVar binds a float32 to a flag.
type floatVar struct{ p *float32 }

func (f floatVar) String() string {
	if f.p == nil {
		return "0"
	}
	return strconv.FormatFloat(float64(*f.p), 'g', -1, 32)
}

func (f floatVar) Set(s string) error {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return err
	}
	*f.p = float32(v)
	return nil
}
