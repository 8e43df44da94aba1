package schema

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// HeaderMappings maps normalized header names to canonical field names.
// Keys cover the Chinese POS export headers, common English aliases and the
// canonical names themselves so already-mapped rows pass through unchanged.
var HeaderMappings = map[string]string{
	// Store
	"店家名稱":      FieldStore,
	"門市":        FieldStore,
	"門市名稱":      FieldStore,
	"store":     FieldStore,
	"storename": FieldStore,
	"branch":    FieldStore,

	// Status
	"訂單狀態":        FieldStatus,
	"狀態":          FieldStatus,
	"status":      FieldStatus,
	"orderstatus": FieldStatus,

	// Timestamps
	"完成剪髮時間":       FieldCompleteTime,
	"完成時間":         FieldCompleteTime,
	"completetime": FieldCompleteTime,
	"completedat":  FieldCompleteTime,
	"建立時間":         FieldCreateTime,
	"createtime":   FieldCreateTime,
	"createdat":    FieldCreateTime,
	"上次剪髮時間":       FieldLastCutDate,
	"lastcutdate":  FieldLastCutDate,

	// Member
	"會員帳號":         FieldMemberID,
	"memberid":     FieldMemberID,
	"member":       FieldMemberID,
	"客戶姓名":         FieldMemberName,
	"membername":   FieldMemberName,
	"customername": FieldMemberName,

	// Provider
	"服務理髮師":              FieldProvider,
	"barber":             FieldProvider,
	"provider":           FieldProvider,
	"stylist":            FieldProvider,
	"指定理髮師":              FieldDesignated,
	"designatedbarber":   FieldDesignated,
	"designatedprovider": FieldDesignated,

	// Service
	"剪髮內容":            FieldStyle,
	"hairstyle":       FieldStyle,
	"style":           FieldStyle,
	"總價":              FieldPrice,
	"totalprice":      FieldPrice,
	"price":           FieldPrice,
	"剪髮時長":            FieldDuration,
	"durationcol":     FieldDuration,
	"duration":        FieldDuration,
	"durationminutes": FieldDuration,
}

// substringMappings maps substrings to canonical field names for fuzzy inference.
// Order matters: more specific substrings come before generic ones.
var substringMappings = []struct {
	Substring string
	Target    string
}{
	{"指定", FieldDesignated},
	{"designat", FieldDesignated},
	{"時長", FieldDuration},
	{"duration", FieldDuration},
	{"上次", FieldLastCutDate},
	{"完成", FieldCompleteTime},
	{"complete", FieldCompleteTime},
	{"建立", FieldCreateTime},
	{"create", FieldCreateTime},
	{"狀態", FieldStatus},
	{"status", FieldStatus},
	{"店", FieldStore},
	{"門市", FieldStore},
	{"store", FieldStore},
	{"帳號", FieldMemberID},
	{"memberid", FieldMemberID},
	{"姓名", FieldMemberName},
	{"name", FieldMemberName},
	{"理髮師", FieldProvider},
	{"設計師", FieldProvider},
	{"barber", FieldProvider},
	{"內容", FieldStyle},
	{"style", FieldStyle},
	{"價", FieldPrice},
	{"price", FieldPrice},
	{"amount", FieldPrice},
}

// InferMappings takes a list of CSV headers and returns a map of sourceCol -> targetField:
//  1. NFKC fold, lowercase, strip whitespace/underscores/hyphens
//  2. Exact match against HeaderMappings
//  3. Substring match for headers left over after every exact match is placed
//  4. No match -> leave unmapped
//
// Each canonical field is claimed by at most one header.
func InferMappings(headers []string) map[string]string {
	result := make(map[string]string, len(headers))
	usedTargets := make(map[string]bool)

	for _, header := range headers {
		target, ok := HeaderMappings[normalizeHeader(header)]
		if ok && !usedTargets[target] {
			result[header] = target
			usedTargets[target] = true
		}
	}

	for _, header := range headers {
		if _, done := result[header]; done {
			continue
		}
		normalized := normalizeHeader(header)
		if normalized == "" {
			continue
		}
		for _, sm := range substringMappings {
			if strings.Contains(normalized, sm.Substring) && !usedTargets[sm.Target] {
				result[header] = sm.Target
				usedTargets[sm.Target] = true
				break
			}
		}
	}

	return result
}

// ApplyMapping rewrites a raw row into canonical field names. Values are trimmed
// and HTML line breaks left over from the export are replaced with spaces.
// Headers without a mapping are kept under their original name.
func ApplyMapping(record map[string]string, mapping map[string]string) map[string]string {
	result := make(map[string]string, len(record))
	for k, v := range record {
		if target, ok := mapping[k]; ok {
			result[target] = cleanValue(v)
		}
	}
	for k, v := range record {
		if _, exists := result[k]; !exists {
			if _, mapped := mapping[k]; !mapped {
				result[k] = cleanValue(v)
			}
		}
	}
	return result
}

// headersOf collects the union of keys across rows in a stable order.
func headersOf(rows []map[string]string) []string {
	seen := make(map[string]bool)
	var headers []string
	for _, row := range rows {
		for k := range row {
			if !seen[k] {
				seen[k] = true
				headers = append(headers, k)
			}
		}
	}
	sort.Strings(headers)
	return headers
}

// normalizeHeader folds full-width characters, lowercases the header and strips
// whitespace, underscores and hyphens.
func normalizeHeader(header string) string {
	s := norm.NFKC.String(strings.TrimPrefix(header, "\ufeff"))
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "_", "")
	s = strings.ReplaceAll(s, "-", "")
	return s
}

func cleanValue(v string) string {
	v = strings.ReplaceAll(v, "<br>", " ")
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(v), `"`))
}
