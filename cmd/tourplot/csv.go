// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/aclements/tourplot/internal/recipe"
	"github.com/aclements/tourplot/tour"
	"github.com/gonum/floats"
)

// readCSV reads a data set with a header row. Columns whose values
// all parse as numbers are toured; the rest are categorical and
// returned as recipe columns. If labelCol is non-empty, it names the
// column that labels observations.
func readCSV(r io.Reader, labelCol string) (*tour.Data, recipe.Columns, error) {
	recs, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(recs) < 2 {
		return nil, nil, fmt.Errorf("no data rows")
	}
	header, recs := recs[0], recs[1:]

	var names []string
	var numeric [][]float64
	cats := make(recipe.Columns)
	for c, name := range header {
		col := make([]float64, len(recs))
		str := make([]string, len(recs))
		isNum := name != labelCol
		for i, rec := range recs {
			str[i] = rec[c]
			if isNum {
				col[i], err = strconv.ParseFloat(rec[c], 64)
				isNum = err == nil
			}
		}
		if isNum {
			names = append(names, name)
			numeric = append(numeric, col)
		} else {
			cats[name] = str
		}
	}
	if len(numeric) == 0 {
		return nil, nil, fmt.Errorf("no numeric columns")
	}
	if labelCol != "" && cats[labelCol] == nil {
		return nil, nil, fmt.Errorf("no column %q", labelCol)
	}

	rows := make([][]float64, len(recs))
	for i := range rows {
		rows[i] = make([]float64, len(numeric))
		for j, col := range numeric {
			rows[i][j] = col[i]
		}
	}
	data, err := tour.NewData(names, rows)
	if err != nil {
		return nil, nil, err
	}
	if labelCol != "" {
		data.RowNames = cats[labelCol]
	}
	return data, cats, nil
}

// rescale maps each column of d onto [0, 1]. Constant columns become
// 0.
func rescale(d *tour.Data) {
	n, p := d.Dims()
	col := make([]float64, n)
	for j := 0; j < p; j++ {
		for i := range col {
			col[i] = d.M.At(i, j)
		}
		lo, hi := floats.Min(col), floats.Max(col)
		floats.AddConst(-lo, col)
		if hi > lo {
			floats.Scale(1/(hi-lo), col)
		}
		for i, v := range col {
			d.M.Set(i, j, v)
		}
	}
}
