// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/aclements/tourplot/proto"
	"github.com/aclements/tourplot/tour"
	"github.com/aclements/tourplot/tour/geodesic"
	"github.com/gonum/matrix/mat64"
)

func init() {
	tour.Warning.SetOutput(io.Discard)
}

const iris = `sepal,petal,width,species,id
5.1,1.4,0.2,setosa,a
7.0,4.7,1.4,versicolor,b
6.3,6.0,2.5,virginica,c
`

func TestReadCSV(t *testing.T) {
	data, cols, err := readCSV(strings.NewReader(iris), "id")
	if err != nil {
		t.Fatal(err)
	}
	if n, p := data.Dims(); n != 3 || p != 3 {
		t.Errorf("data is %d×%d, want 3×3", n, p)
	}
	if want := []string{"sepal", "petal", "width"}; !reflect.DeepEqual(data.Names, want) {
		t.Errorf("names %v, want %v", data.Names, want)
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(data.RowNames, want) {
		t.Errorf("row names %v, want %v", data.RowNames, want)
	}
	if want := []string{"setosa", "versicolor", "virginica"}; !reflect.DeepEqual(cols["species"], want) {
		t.Errorf("species %v, want %v", cols["species"], want)
	}
	if got := data.M.At(1, 1); got != 4.7 {
		t.Errorf("petal[1] = %v, want 4.7", got)
	}
}

func TestReadCSVErrors(t *testing.T) {
	for _, test := range []struct {
		in, label, want string
	}{
		{"a,b\n", "", "no data rows"},
		{"a,b\nx,y\n", "", "no numeric columns"},
		{iris, "name", `no column "name"`},
		{"a,b\n1\n", "", "wrong number of fields"},
	} {
		_, _, err := readCSV(strings.NewReader(test.in), test.label)
		if err == nil || !strings.Contains(err.Error(), test.want) {
			t.Errorf("%q: got %v, want error containing %q", test.in, err, test.want)
		}
	}
}

func TestRescale(t *testing.T) {
	data, err := tour.NewData(nil, [][]float64{{1, 5}, {3, 5}, {2, 5}})
	if err != nil {
		t.Fatal(err)
	}
	rescale(data)
	want := mat64.NewDense(3, 2, []float64{0, 0, 1, 0, 0.5, 0})
	if !mat64.Equal(data.M, want) {
		t.Errorf("got %v, want %v", mat64.Formatted(data.M), mat64.Formatted(want))
	}
}

func TestDefaultBuilders(t *testing.T) {
	class := []string{"x", "y", "x"}
	check := func(t *testing.T, d int, want []proto.Builder) {
		t.Helper()
		rng := rand.New(rand.NewSource(1))
		data, err := tour.NewData(nil, [][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 0}})
		if err != nil {
			t.Fatal(err)
		}
		s, err := tour.Begin(tour.SingleFrame(geodesic.Random(3, d, rng)), tour.WithData(data))
		if err != nil {
			t.Fatal(err)
		}
		defer s.Close()
		if got := defaultBuilders(s, class); !reflect.DeepEqual(got, want) {
			t.Errorf("got %#v\nwant %#v", got, want)
		}
	}
	check(t, 2, []proto.Builder{proto.Basis{}, proto.Point{Aes: proto.Aes{Color: class}}, proto.Origin{}})
	check(t, 1, []proto.Builder{proto.Basis1D{}, proto.Density{Aes: proto.Aes{Fill: class}}, proto.Origin1D{}})
}
