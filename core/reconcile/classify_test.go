package reconcile

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Grid(t *testing.T) {
	statuses := []struct {
		name  string
		value any
	}{
		{"removed", StatusRemoved},
		{"new_outside", StatusNewOutsideOrder},
		{"other", 2},
	}

	// want[itemIdPresent][outOfOrder][status]
	want := map[bool]map[bool]map[string]Kind{
		true: {
			true:  {"removed": KindDelete, "new_outside": KindInsert, "other": KindUpdate},
			false: {"removed": KindUpdate, "new_outside": KindUpdate, "other": KindUpdate},
		},
		false: {
			true:  {"removed": KindDelete, "new_outside": KindInsert, "other": KindReject},
			false: {"removed": KindReject, "new_outside": KindReject, "other": KindReject},
		},
	}

	for _, hasID := range []bool{true, false} {
		for _, outOfOrder := range []bool{true, false} {
			for _, st := range statuses {
				name := fmt.Sprintf("id=%v/ooo=%v/status=%s", hasID, outOfOrder, st.name)
				t.Run(name, func(t *testing.T) {
					req := ChangeRequest{
						OutOfOrder: NewValue(outOfOrder),
						Status:     NewValue(st.value),
					}
					if hasID {
						req.ItemID = NewValue(10)
					}
					assert.Equal(t, want[hasID][outOfOrder][st.name], Classify(req))
				})
			}
		}
	}
}

func TestClassify_DependsOnlyOnKeyFields(t *testing.T) {
	base := ChangeRequest{
		ItemID:     NewValue(10),
		OutOfOrder: NewValue(false),
		Status:     NewValue(2),
	}
	noisy := base
	noisy.OrderRef = NewValue("abc")
	noisy.UnitValue = NewValue("not a number")
	noisy.Description = NewValue("anything")

	assert.Equal(t, Classify(base), Classify(noisy))
}

func TestClassify_LooseValues(t *testing.T) {
	tests := []struct {
		name string
		req  ChangeRequest
		want Kind
	}{
		{
			name: "string status and flag",
			req:  ChangeRequest{OutOfOrder: NewValue("true"), Status: NewValue("9")},
			want: KindInsert,
		},
		{
			name: "numeric flag",
			req:  ChangeRequest{OutOfOrder: NewValue(1), Status: NewValue("1"), ItemID: NewValue("11")},
			want: KindDelete,
		},
		{
			name: "zero itemId is absent",
			req:  ChangeRequest{ItemID: NewValue(0), Status: NewValue(2)},
			want: KindReject,
		},
		{
			name: "blank itemId is absent",
			req:  ChangeRequest{ItemID: NewValue("  "), Status: NewValue(2)},
			want: KindReject,
		},
		{
			name: "garbage itemId is present",
			req:  ChangeRequest{ItemID: NewValue("x1"), Status: NewValue(2)},
			want: KindUpdate,
		},
		{
			name: "unparsable status is an in-order state",
			req:  ChangeRequest{OutOfOrder: NewValue(true), Status: NewValue("nine")},
			want: KindReject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.req))
		})
	}
}
