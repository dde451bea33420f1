package normalize

import "encoding/json"

// UnwrapEnvelope digs the order array out of the upstream list response.
// Observed envelopes: {data:{data:[...]}}, {data:{orders:[...]}},
// {orders:[...]}, {data:[...]}, and a bare array. Anything else yields an
// empty slice, never an error.
func UnwrapEnvelope(body []byte) []map[string]any {
	var bare []map[string]any
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare
	}

	var outer map[string]any
	if err := json.Unmarshal(body, &outer); err != nil {
		return nil
	}
	if arr := arrayAt(outer, "orders"); arr != nil {
		return arr
	}
	if arr := arrayAt(outer, "data"); arr != nil {
		return arr
	}
	if inner, ok := outer["data"].(map[string]any); ok {
		if arr := arrayAt(inner, "data"); arr != nil {
			return arr
		}
		if arr := arrayAt(inner, "orders"); arr != nil {
			return arr
		}
	}
	return nil
}

func arrayAt(m map[string]any, key string) []map[string]any {
	arr, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(arr))
	for _, e := range arr {
		if rec, ok := e.(map[string]any); ok {
			out = append(out, rec)
		}
	}
	return out
}
