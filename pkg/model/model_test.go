package model

import (
	"math"
	"strings"
	"testing"
	"time"
)

func ts(h int) time.Time {
	return time.Date(2026, 9, 1, h, 0, 0, 0, time.UTC)
}

func TestTimeRange_Overlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     TimeRange
		expected bool
	}{
		{"完全重叠", TimeRange{ts(9), ts(17)}, TimeRange{ts(9), ts(17)}, true},
		{"部分重叠", TimeRange{ts(9), ts(13)}, TimeRange{ts(12), ts(17)}, true},
		{"首尾相接不算重叠", TimeRange{ts(9), ts(12)}, TimeRange{ts(12), ts(17)}, false},
		{"完全分离", TimeRange{ts(9), ts(10)}, TimeRange{ts(14), ts(17)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := tt.a.Overlaps(tt.b); result != tt.expected {
				t.Errorf("Overlaps() = %v, expected %v", result, tt.expected)
			}
			if result := tt.b.Overlaps(tt.a); result != tt.expected {
				t.Errorf("反向 Overlaps() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestTimeRange_Covers(t *testing.T) {
	outer := TimeRange{ts(8), ts(18)}

	if !outer.Covers(TimeRange{ts(9), ts(17)}) {
		t.Error("应该完整覆盖内部范围")
	}
	if !outer.Covers(outer) {
		t.Error("应该覆盖自身")
	}
	if outer.Covers(TimeRange{ts(9), ts(19)}) {
		t.Error("不应覆盖超出结束时间的范围")
	}
}

func TestRule_Defaults(t *testing.T) {
	r := &Rule{ID: "r1", MinRestHours: 8}

	if min := r.EffectiveMinShifts(); min != 0 {
		t.Errorf("EffectiveMinShifts() = %d, expected 0", min)
	}
	if max := r.EffectiveMaxShifts(); max != DefaultMaxShifts {
		t.Errorf("EffectiveMaxShifts() = %d, expected %d", max, DefaultMaxShifts)
	}
	if rest := r.RestDuration(); rest != 8*time.Hour {
		t.Errorf("RestDuration() = %v, expected 8h", rest)
	}

	min, max := 2, 5
	r2 := &Rule{ID: "r2", MinShifts: &min, MaxShifts: &max}
	if r2.EffectiveMinShifts() != 2 || r2.EffectiveMaxShifts() != 5 {
		t.Error("显式配置的 min/max 应该生效")
	}
}

func TestWorker_PreferenceFor(t *testing.T) {
	w := &Worker{ID: "w1", Preferences: map[string]float64{"s1": 3}}

	if p := w.PreferenceFor("s1"); p != 3 {
		t.Errorf("PreferenceFor(s1) = %v, expected 3", p)
	}
	if p := w.PreferenceFor("s2"); p != 0 {
		t.Errorf("未列出的班次偏好应为 0, got %v", p)
	}

	none := &Worker{ID: "w2"}
	if p := none.PreferenceFor("s1"); p != 0 {
		t.Errorf("无偏好表时应为 0, got %v", p)
	}
}

func TestWorker_CanWork(t *testing.T) {
	w := &Worker{
		ID: "w1",
		Availability: []AvailabilityInterval{
			{StartTime: ts(8), EndTime: ts(12)},
			{StartTime: ts(14), EndTime: ts(18)},
		},
	}

	tests := []struct {
		name     string
		shift    Shift
		expected bool
	}{
		{"完整落在时段内", Shift{ID: "s1", StartTime: ts(9), EndTime: ts(11)}, true},
		{"贴边", Shift{ID: "s2", StartTime: ts(8), EndTime: ts(12)}, true},
		{"跨越间隙", Shift{ID: "s3", StartTime: ts(11), EndTime: ts(15)}, false},
		{"完全在外", Shift{ID: "s4", StartTime: ts(19), EndTime: ts(21)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := w.CanWork(&tt.shift); result != tt.expected {
				t.Errorf("CanWork() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestWorker_HasQualification(t *testing.T) {
	w := &Worker{ID: "w1", Qualifications: []string{"nurse", "driver"}}

	if !w.HasQualification("nurse") {
		t.Error("应该具备 nurse 资质")
	}
	if w.HasQualification("pilot") {
		t.Error("不应具备 pilot 资质")
	}
}

func TestReadInput(t *testing.T) {
	doc := `{
		"workers": [
			{
				"id": "w1",
				"preferences": {"s1": 2},
				"rules": "r1",
				"availability": [
					{"start_time": "2026-09-01T08:00:00Z", "end_time": "2026-09-01T18:00:00Z"}
				]
			}
		],
		"shifts": [
			{"id": "s1", "start_time": "2026-09-01T09:00:00Z", "end_time": "2026-09-01T17:00:00Z", "count": 1}
		],
		"rules": [
			{"id": "r1", "min_rest_hours_between_shifts": 8}
		]
	}`

	input, err := ReadInput(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ReadInput() 失败: %v", err)
	}
	if len(input.Workers) != 1 || len(input.Shifts) != 1 || len(input.Rules) != 1 {
		t.Fatalf("解析结果数量不对: %+v", input)
	}
	if input.Workers[0].RuleID != "r1" {
		t.Errorf("RuleID = %q, expected r1", input.Workers[0].RuleID)
	}
	if input.Workers[0].PreferenceFor("s1") != 2 {
		t.Error("偏好解析不正确")
	}
	if !input.Shifts[0].StartTime.Equal(ts(9)) {
		t.Errorf("班次开始时间解析不正确: %v", input.Shifts[0].StartTime)
	}
}

func TestInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   Input
		wantErr bool
	}{
		{
			"班次时间倒置",
			Input{Shifts: []Shift{{ID: "s1", StartTime: ts(17), EndTime: ts(9), Count: 1}}},
			true,
		},
		{
			"需求人数为负",
			Input{Shifts: []Shift{{ID: "s1", StartTime: ts(9), EndTime: ts(17), Count: -1}}},
			true,
		},
		{
			"规则上限小于下限",
			Input{Rules: []Rule{{ID: "r1", MinShifts: intPtr(3), MaxShifts: intPtr(1)}}},
			true,
		},
		{
			"休息时长为负",
			Input{Rules: []Rule{{ID: "r1", MinRestHours: -1}}},
			true,
		},
		{
			"合法输入",
			Input{
				Shifts: []Shift{{ID: "s1", StartTime: ts(9), EndTime: ts(17), Count: 1}},
				Rules:  []Rule{{ID: "r1", MinRestHours: 8}},
			},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestShift_DurationHours(t *testing.T) {
	s := &Shift{StartTime: ts(9), EndTime: ts(17)}
	if h := s.DurationHours(); math.Abs(h-8) > 1e-9 {
		t.Errorf("DurationHours() = %v, expected 8", h)
	}
}

func intPtr(v int) *int { return &v }
