package perftests

import (
	"context"
	"fmt"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	auction "auction-marketplace/internal/auctionService"
	model "auction-marketplace/internal/models"
	repository "auction-marketplace/internal/repository"
)

func seedAuction(b *testing.B, repo *repository.MemoryRepo, id string, startingBid float64) {
	b.Helper()
	_, err := repo.CreateAuction(context.Background(), model.AuctionItem{
		ID:          id,
		Name:        fmt.Sprintf("Benchmark %s", id),
		Description: "benchmark item",
		StartingBid: startingBid,
		HighestBid:  startingBid,
		CreatedAt:   time.Now().UTC(),
		EndTime:     time.Now().UTC().Add(24 * time.Hour),
	})
	if err != nil {
		b.Fatalf("failed to seed auction: %v", err)
	}
}

// Benchmark 1: PlaceBid - Isolated Items (Low Contention)
func Benchmark_PlaceBid_Isolated(b *testing.B) {
	repo := repository.NewMemoryRepo()
	svc := auction.NewAuctionService(repo)
	ctx := context.Background()

	for i := 0; i < b.N; i++ {
		seedAuction(b, repo, fmt.Sprintf("item_%d", i), 50)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		auctionID := fmt.Sprintf("item_%d", i)
		bidder := fmt.Sprintf("user_%d", i)
		if _, err := svc.PlaceBid(ctx, auctionID, float64(51+rand.Intn(100)), bidder); err != nil {
			b.Fatalf("failed to place bid: %v", err)
		}
	}
}

// Benchmark 2: PlaceBid - Shared Item (High Contention)
func Benchmark_PlaceBid_ConcurrentSharedItem(b *testing.B) {
	repo := repository.NewMemoryRepo()
	svc := auction.NewAuctionService(repo)
	ctx := context.Background()

	seedAuction(b, repo, "shared_item", 50)

	b.ReportAllocs()
	b.ResetTimer()

	var lastBid int64 = 50

	b.RunParallel(func(pb *testing.PB) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		for pb.Next() {
			bidder := fmt.Sprintf("user_parallel_%d", rnd.Int())

			nextBid := atomic.AddInt64(&lastBid, int64(rnd.Intn(5)+1))
			// losing the write race is part of the workload
			_, _ = svc.PlaceBid(ctx, "shared_item", float64(nextBid), bidder)
		}
	})
}

// Benchmark 3: GetAuction - Concurrent reads against a hot item
func Benchmark_GetAuction_ConcurrentSharedItem(b *testing.B) {
	repo := repository.NewMemoryRepo()
	svc := auction.NewAuctionService(repo)
	ctx := context.Background()

	seedAuction(b, repo, "shared_item", 50)
	for j := 0; j < 100; j++ {
		_, _ = svc.PlaceBid(ctx, "shared_item", float64(51+j), fmt.Sprintf("user_%d", j))
	}

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := svc.GetAuction(ctx, "shared_item"); err != nil {
				b.Fatalf("failed to get auction: %v", err)
			}
		}
	})
}

// Benchmark 4: Mixed Workload (readers + bidders on one item)
func Benchmark_MixedWorkload_SharedItem(b *testing.B) {
	repo := repository.NewMemoryRepo()
	svc := auction.NewAuctionService(repo)
	ctx := context.Background()

	seedAuction(b, repo, "shared_item", 50)

	b.ReportAllocs()
	b.ResetTimer()

	var lastBid int64 = 50

	// Ratio: 70% readers, 30% bidders
	b.RunParallel(func(pb *testing.PB) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		for pb.Next() {
			if rnd.Intn(10) < 3 {
				bidder := fmt.Sprintf("user_writer_%d", rnd.Int())
				nextBid := atomic.AddInt64(&lastBid, int64(rnd.Intn(5)+1))
				_, _ = svc.PlaceBid(ctx, "shared_item", float64(nextBid), bidder)
			} else {
				_, _ = svc.ListLiveAuctions(ctx)
			}
		}
	})
}
