//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"syscall/js"

	"salonkpi/pkg/engine"
	"salonkpi/pkg/report"
	"salonkpi/pkg/schema"
	"salonkpi/pkg/source"
)

// Each page loads one WASM instance. The uploaded exports live in memory
// until salonLoad is called again.
var (
	uploaded source.Memory
	builder  *report.Builder
)

func errorJSON(msg string) string {
	data, _ := json.Marshal(map[string]string{"error": msg})
	return string(data)
}

func bytesArg(v js.Value) []byte {
	data := make([]byte, v.Get("length").Int())
	js.CopyBytesToGo(data, v)
	return data
}

// load handles salonLoad.
// args[0] = Uint8Array (POS export CSV)
// Returns the dataset stats and the available filter values.
func load(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorJSON("salonLoad requires 1 argument: Uint8Array")
	}
	uploaded.TransactionsCSV = bytesArg(args[0])
	return rebuild()
}

// loadMembers handles salonLoadMembers.
// args[0] = Uint8Array (member-history CSV)
// Reloads the dataset when transactions are already present.
func loadMembers(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorJSON("salonLoadMembers requires 1 argument: Uint8Array")
	}
	uploaded.MembersCSV = bytesArg(args[0])
	if len(uploaded.TransactionsCSV) == 0 {
		return `{"ok": true}`
	}
	return rebuild()
}

func rebuild() string {
	b, err := report.NewBuilder(&uploaded, report.Options{Normalize: schema.DefaultOptions()})
	if err != nil {
		return errorJSON(err.Error())
	}
	if err := b.Load(context.Background()); err != nil {
		return errorJSON(err.Error())
	}
	builder = b

	ds := b.Dataset()
	result := map[string]interface{}{
		"normalize": ds.NormalizeStats,
		"import":    ds.ImportStats,
		"dataset":   ds.Lookup.Stats,
		"years":     engine.Years(ds.Records),
		"stores":    engine.Stores(ds.Records),
	}
	data, _ := json.Marshal(result)
	return string(data)
}

// buildReport handles salonReport.
// args[0] = string (year, "" for all)
// args[1] = string (store, "" for all)
// args[2] = number (last N months, 0 for all)
// PRECONDITION: salonLoad() must have succeeded.
func buildReport(this js.Value, args []js.Value) interface{} {
	if builder == nil {
		return errorJSON("no data loaded, call salonLoad() first")
	}
	var filter engine.Filter
	if len(args) > 0 {
		filter.Year = args[0].String()
	}
	if len(args) > 1 {
		filter.Store = args[1].String()
	}
	if len(args) > 2 && args[2].Type() == js.TypeNumber {
		filter.RecentMonths = args[2].Int()
	}

	r, err := builder.Build(filter)
	if err != nil {
		return errorJSON(err.Error())
	}
	data, err := json.Marshal(r)
	if err != nil {
		return errorJSON(err.Error())
	}
	return string(data)
}

func main() {
	js.Global().Set("salonLoad", js.FuncOf(load))
	js.Global().Set("salonLoadMembers", js.FuncOf(loadMembers))
	js.Global().Set("salonReport", js.FuncOf(buildReport))

	select {}
}
