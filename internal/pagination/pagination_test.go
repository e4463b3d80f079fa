package pagination

import "testing"

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name      string
		req       PageRequest
		wantData  []int
		wantPage  int
		wantSize  int
		wantPages int
	}{
		{name: "zero_request_returns_all", req: PageRequest{}, wantData: []int{1, 2, 3, 4, 5}, wantPage: 1, wantSize: 5, wantPages: 1},
		{name: "first_page", req: PageRequest{Page: 1, PageSize: 2}, wantData: []int{1, 2}, wantPage: 1, wantSize: 2, wantPages: 3},
		{name: "last_partial_page", req: PageRequest{Page: 3, PageSize: 2}, wantData: []int{5}, wantPage: 3, wantSize: 2, wantPages: 3},
		{name: "past_the_end", req: PageRequest{Page: 9, PageSize: 2}, wantData: []int{}, wantPage: 9, wantSize: 2, wantPages: 3},
		{name: "default_size", req: PageRequest{Page: 1}, wantData: []int{1, 2, 3, 4, 5}, wantPage: 1, wantSize: 20, wantPages: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(items, tt.req)
			if len(got.Data) != len(tt.wantData) {
				t.Fatalf("expected %v, got %v", tt.wantData, got.Data)
			}
			for i := range got.Data {
				if got.Data[i] != tt.wantData[i] {
					t.Errorf("expected %v, got %v", tt.wantData, got.Data)
				}
			}
			if got.Page != tt.wantPage || got.PageSize != tt.wantSize || got.TotalPages != tt.wantPages {
				t.Errorf("unexpected metadata: %+v", got)
			}
			if got.TotalItems != 5 {
				t.Errorf("expected 5 total items, got %d", got.TotalItems)
			}
		})
	}

	t.Run("empty", func(t *testing.T) {
		got := Paginate([]int(nil), PageRequest{})
		if got.Data == nil || got.TotalPages != 0 {
			t.Errorf("unexpected empty page: %+v", got)
		}
	})
}
