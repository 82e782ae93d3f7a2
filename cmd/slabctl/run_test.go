package main

import (
	"encoding/json"
	"testing"
)

func TestRunCommand(t *testing.T) {
	tests := []struct {
		name        string
		pages       int
		sizes       []int
		repeat      int
		freeEvery   int
		wantJSON    bool
		wantErr     bool
		wantContain []string
	}{
		{
			name:        "second slab after first fills",
			pages:       4,
			sizes:       []int{20},
			repeat:      128,
			wantContain: []string{"128 allocated", "1 meta, 2 data, 0 span", "State:       initialized"},
		},
		{
			name:  "exhaustion after k pages",
			pages: 4,
			sizes: []int{32, 64, 128, 256},
			wantContain: []string{
				"3 allocated", "1 exhausted", "State:       exhausted", "First error:",
			},
		},
		{
			name:        "free every other allocation",
			pages:       4,
			sizes:       []int{20},
			repeat:      10,
			freeEvery:   2,
			wantContain: []string{"10 allocated, 5 freed", "Live blocks: 5"},
		},
		{
			name:        "spanning request",
			pages:       4,
			sizes:       []int{1500},
			wantContain: []string{"0 data, 1 span"},
		},
		{
			name:        "invalid size counted",
			pages:       4,
			sizes:       []int{0, 20},
			wantContain: []string{"1 allocated", "1 rejected"},
		},
		{
			name:        "json output",
			pages:       4,
			sizes:       []int{20, 20},
			wantJSON:    true,
			wantContain: []string{`"allocated": 2`, `"State": "initialized"`},
		},
		{
			name:    "zero pages",
			pages:   0,
			sizes:   []int{20},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			wlPages = tt.pages
			wlSizes = tt.sizes
			if tt.repeat > 0 {
				wlRepeat = tt.repeat
			}
			wlFreeEvery = tt.freeEvery
			jsonOut = tt.wantJSON

			output, err := captureOutput(t, runRun)
			if (err != nil) != tt.wantErr {
				t.Fatalf("runRun() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if tt.wantJSON {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)
		})
	}
}

func TestRunCommandInvalidGeometry(t *testing.T) {
	resetFlags()
	wlPageSize = 3000

	if _, err := captureOutput(t, runRun); err == nil {
		t.Fatal("expected error for non power-of-two page size")
	}
}

func TestRunJSONDecodes(t *testing.T) {
	resetFlags()
	wlSizes = []int{20}
	wlRepeat = 127
	jsonOut = true

	output, err := captureOutput(t, runRun)
	if err != nil {
		t.Fatalf("runRun() error = %v", err)
	}
	var res struct {
		Allocated int `json:"allocated"`
		Stats     struct {
			DataSlabs  int
			LiveBlocks int
		} `json:"stats"`
	}
	if err := json.Unmarshal([]byte(output), &res); err != nil {
		t.Fatalf("decode: %v\n%s", err, output)
	}
	if res.Allocated != 127 || res.Stats.DataSlabs != 1 || res.Stats.LiveBlocks != 127 {
		t.Errorf("unexpected result: %+v", res)
	}
}
