package week

import (
	"encoding/json"
	"testing"
)

func TestLinkList_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   LinkList
		want string
	}{
		{name: "nil marshals to empty list", in: nil, want: "[]"},
		{name: "empty", in: LinkList{}, want: "[]"},
		{name: "ordered", in: LinkList{"https://a", "https://b"}, want: `["https://a","https://b"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.in)
			if err != nil {
				t.Fatalf("Marshal() failed: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("Marshal() = %s, want %s", data, tt.want)
			}
		})
	}
}

func TestLinkList_Scan(t *testing.T) {
	tests := []struct {
		name    string
		src     interface{}
		want    int
		wantErr bool
	}{
		{name: "NULL column", src: nil, want: 0},
		{name: "empty bytes", src: []byte{}, want: 0},
		{name: "json null", src: []byte("null"), want: 0},
		{name: "bytes", src: []byte(`["https://a","https://b"]`), want: 2},
		{name: "string", src: `["https://a"]`, want: 1},
		{name: "bad json", src: []byte("{"), wantErr: true},
		{name: "unsupported type", src: 42, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l LinkList
			err := l.Scan(tt.src)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Scan() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if l == nil {
				t.Fatal("Scan() left the list nil")
			}
			if len(l) != tt.want {
				t.Errorf("len = %d, want %d", len(l), tt.want)
			}
		})
	}
}

func TestNewWeek_Validate(t *testing.T) {
	tests := []struct {
		name    string
		nw      NewWeek
		wantErr bool
	}{
		{name: "valid", nw: NewWeek{Title: "Algebra", StartDate: "2024-01-15", Description: "Linear equations"}},
		{name: "out of range date", nw: NewWeek{Title: "Bad", StartDate: "2024-13-40", Description: "nope"}, wantErr: true},
		{name: "non-canonical date", nw: NewWeek{Title: "Bad", StartDate: "2024-3-5", Description: "nope"}, wantErr: true},
		{name: "missing title", nw: NewWeek{StartDate: "2024-01-15", Description: "d"}, wantErr: true},
		{name: "missing description", nw: NewWeek{Title: "t", StartDate: "2024-01-15"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.nw.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	t.Run("sanitizes and defaults links", func(t *testing.T) {
		nw := NewWeek{
			Title:       " <b>Algebra</b> ",
			StartDate:   "2024-01-15",
			Description: "<script>alert(1)</script>Linear equations",
		}
		if err := nw.Validate(); err != nil {
			t.Fatalf("Validate() failed: %v", err)
		}
		if nw.Title != "Algebra" {
			t.Errorf("Title = %q, want %q", nw.Title, "Algebra")
		}
		if nw.Description != "Linear equations" {
			t.Errorf("Description = %q, want %q", nw.Description, "Linear equations")
		}
		if nw.Links == nil {
			t.Error("Links left nil")
		}
	})
}

func TestUpdateWeek_Validate(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	tests := []struct {
		name    string
		uw      UpdateWeek
		wantErr bool
	}{
		{name: "title only", uw: UpdateWeek{ID: 1, Title: strPtr("Algebra II")}},
		{name: "empty links list is a field", uw: UpdateWeek{ID: 1, Links: &[]string{}}},
		{name: "missing id", uw: UpdateWeek{Title: strPtr("x")}, wantErr: true},
		{name: "no fields", uw: UpdateWeek{ID: 1}, wantErr: true},
		{name: "bad date", uw: UpdateWeek{ID: 1, StartDate: strPtr("2024-13-40")}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.uw.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestQueryFilter_Clean(t *testing.T) {
	tests := []struct {
		name     string
		filter   QueryFilter
		wantSort string
		wantOrd  string
	}{
		{name: "defaults to start_date asc", filter: QueryFilter{}, wantSort: "start_date", wantOrd: "asc"},
		{name: "valid sort", filter: QueryFilter{Sort: "title", Order: "desc"}, wantSort: "title", wantOrd: "desc"},
		{name: "bogus sort falls back", filter: QueryFilter{Sort: "id"}, wantSort: "start_date", wantOrd: "asc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.filter.Clean()
			if tt.filter.Sort != tt.wantSort {
				t.Errorf("Sort = %q, want %q", tt.filter.Sort, tt.wantSort)
			}
			if tt.filter.Order != tt.wantOrd {
				t.Errorf("Order = %q, want %q", tt.filter.Order, tt.wantOrd)
			}
		})
	}
}
