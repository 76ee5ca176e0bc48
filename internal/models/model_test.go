package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAuctionItem_Status(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	tests := []struct {
		name string
		item AuctionItem
		want AuctionStatus
	}{
		{
			name: "open_before_deadline",
			item: AuctionItem{EndTime: now.Add(time.Hour)},
			want: StatusOpen,
		},
		{
			name: "closed_after_deadline",
			item: AuctionItem{EndTime: now.Add(-time.Second)},
			want: StatusClosed,
		},
		{
			name: "closed_flag_set",
			item: AuctionItem{EndTime: now.Add(time.Hour), IsClosed: true},
			want: StatusClosed,
		},
		{
			name: "flag_set_and_deadline_passed",
			item: AuctionItem{EndTime: now.Add(-time.Hour), IsClosed: true},
			want: StatusClosed,
		},
		{
			name: "deadline_exactly_now_still_open",
			item: AuctionItem{EndTime: now},
			want: StatusOpen,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, tc.item.Status(now))
		})
	}
}
