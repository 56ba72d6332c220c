// Package dynjson provides a dynamically typed, immutable JSON document
// model for payloads whose shape is unknown at compile time.
//
// A Value is one node of a parsed JSON tree: null, bool, number, string,
// array, or object. Navigation never fails: Field and Index return the
// null Value for missing keys, out-of-range indexes, and kind mismatches,
// so lookups chain without intermediate error checks. Extraction is
// explicit via comma-ok accessors (Str, Bool, Num, Int64, Float64).
//
// Numbers preserve their source text as json.Number, so large integers
// survive a parse/encode round trip without float64 truncation.
//
// # Usage
//
//	doc, err := dynjson.Parse(body)
//	if err != nil {
//	    return err
//	}
//	name, ok := doc.Field("user").Field("name").Str()
//	for item := range doc.Field("items").Values() {
//	    ...
//	}
//
// # Building Documents
//
//	payload := dynjson.MustFrom(map[string]any{
//	    "query": "status:open",
//	    "limit": 50,
//	})
//	data, err := payload.Encode()
package dynjson
