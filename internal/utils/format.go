package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/iancoleman/orderedmap"
	"github.com/jedib0t/go-pretty/v6/table"
)

/**
 * Convert a struct into an ordered map following its json tags
 * @param {any} v - Struct value with json tags
 * @returns {*orderedmap.OrderedMap} Map whose keys keep the field order of the struct
 * @returns {error} Marshal/unmarshal errors
 */
func StructToOrderedMap(v any) (*orderedmap.OrderedMap, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	om := orderedmap.New()
	if err := json.Unmarshal(data, om); err != nil {
		return nil, err
	}
	return om, nil
}

/**
 * Convert a list of structs into table rows
 * @param {[]T} rows - Structs with json tags
 * @returns {[]*orderedmap.OrderedMap} One map per row; rows that fail to convert are skipped
 */
func ToOrderedMaps[T any](rows []T) []*orderedmap.OrderedMap {
	dataList := make([]*orderedmap.OrderedMap, 0, len(rows))
	for _, row := range rows {
		recordMap, err := StructToOrderedMap(row)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skip row: %v\n", err)
			continue
		}
		dataList = append(dataList, recordMap)
	}
	return dataList
}

/**
 * Print rows as a table on stdout
 * @param {[]*orderedmap.OrderedMap} dataList - Rows; the first row decides the columns
 */
func PrintFormat(dataList []*orderedmap.OrderedMap) {
	FprintFormat(os.Stdout, dataList)
}

// FprintFormat renders rows as a table on w; nil rows are ignored.
func FprintFormat(w io.Writer, dataList []*orderedmap.OrderedMap) {
	rows := make([]*orderedmap.OrderedMap, 0, len(dataList))
	for _, row := range dataList {
		if row != nil {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return
	}
	keys := rows[0].Keys()

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := table.Row{}
	for _, k := range keys {
		header = append(header, strings.ToUpper(k))
	}
	t.AppendHeader(header)

	for _, row := range rows {
		r := table.Row{}
		for _, k := range keys {
			v, _ := row.Get(k)
			r = append(r, cellText(v))
		}
		t.AppendRow(r)
	}
	t.Render()
}

func cellText(v any) string {
	switch val := v.(type) {
	case nil:
		return "-"
	case string:
		if val == "" {
			return "-"
		}
		return val
	case bool:
		if val {
			return "yes"
		}
		return "no"
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	}
	return fmt.Sprint(v)
}
