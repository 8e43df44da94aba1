package schema

import (
	"reflect"
	"testing"
)

func TestInferMappings(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    map[string]string
	}{
		{
			name:    "POS export headers",
			headers: []string{"店家名稱", "訂單狀態", "完成剪髮時間", "會員帳號", "服務理髮師", "指定理髮師"},
			want: map[string]string{
				"店家名稱":   FieldStore,
				"訂單狀態":   FieldStatus,
				"完成剪髮時間": FieldCompleteTime,
				"會員帳號":   FieldMemberID,
				"服務理髮師":  FieldProvider,
				"指定理髮師":  FieldDesignated,
			},
		},
		{
			name:    "English aliases with separators",
			headers: []string{"Store Name", "Member_ID", "Total-Price", "Hair Style"},
			want: map[string]string{
				"Store Name":  FieldStore,
				"Member_ID":   FieldMemberID,
				"Total-Price": FieldPrice,
				"Hair Style":  FieldStyle,
			},
		},
		{
			name:    "exact match wins over an earlier substring candidate",
			headers: []string{"分店", "門市"},
			want: map[string]string{
				"門市": FieldStore,
			},
		},
		{
			name:    "substring fallback",
			headers: []string{"指定設計師", "剪髮時長(分)", "備註"},
			want: map[string]string{
				"指定設計師":   FieldDesignated,
				"剪髮時長(分)": FieldDuration,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferMappings(tt.headers); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("InferMappings() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyMapping(t *testing.T) {
	record := map[string]string{"剪髮內容": ` "油頭<br>漸層" `, "備註": " vip "}
	mapping := map[string]string{"剪髮內容": FieldStyle}

	got := ApplyMapping(record, mapping)
	want := map[string]string{FieldStyle: "油頭 漸層", "備註": "vip"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ApplyMapping() = %v, want %v", got, want)
	}
}
