package bot

import (
	"reflect"
	"testing"
)

func TestMenuRows(t *testing.T) {
	menus := NewMenus([]string{"Toshkent", "Samarqand", "Buxoro"})

	tests := []struct {
		name string
		menu Menu
		want [][]string
	}{
		{
			name: "main",
			menu: MenuMain,
			want: [][]string{
				{BtnNumbersSection, BtnCallsignsSection},
				{BtnEmployeeSection},
			},
		},
		{
			name: "numbers",
			menu: MenuNumbers,
			want: [][]string{{BtnWriteNumber}, {BtnTodayNumbers}, {BtnBackMain}},
		},
		{
			name: "callsigns",
			menu: MenuCallsigns,
			want: [][]string{{BtnAddCallsign}, {BtnTodayCallsign}, {BtnBackMain}},
		},
		{
			name: "employee",
			menu: MenuEmployee,
			want: [][]string{{BtnEmployeeName, BtnRegions}, {BtnBackMain}},
		},
		{
			name: "regions_two_per_row_plus_back",
			menu: MenuRegions,
			want: [][]string{{"Toshkent", "Samarqand"}, {"Buxoro"}, {BtnBackMain}},
		},
		{
			name: "name_entry_back_only",
			menu: MenuNameEntry,
			want: [][]string{{BtnBackMain}},
		},
		{
			name: "remove",
			menu: MenuRemove,
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := menus.Rows(tt.menu); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Rows(%v) = %v, want %v", tt.menu, got, tt.want)
			}
		})
	}
}
