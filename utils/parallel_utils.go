package utils

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

type PartitionMap struct {
	MaxIndex       int // MaxIndex is partitioned into ParallelDegree partitions
	ParallelDegree int
	Partitions     [][2]int // Beginning and end index of partitions
}

func NewPartitionMap(ParallelDegree, maxIndex int) (pm *PartitionMap) {
	if ParallelDegree < 1 {
		ParallelDegree = 1
	}
	pm = &PartitionMap{
		MaxIndex:       maxIndex,
		ParallelDegree: ParallelDegree,
		Partitions:     make([][2]int, ParallelDegree),
	}
	for n := 0; n < ParallelDegree; n++ {
		pm.Partitions[n] = pm.Split1D(n)
	}
	return
}

// ParallelDegreeFor picks the number of partitions for maxIndex items, procLimit of zero means one per CPU
func ParallelDegreeFor(procLimit, maxIndex int) (np int) {
	if procLimit > 0 {
		np = procLimit
	} else {
		np = runtime.NumCPU()
	}
	if np > maxIndex {
		np = 1
	}
	return
}

// GetBucketRange is the half open index range [kMin, kMax) of a bucket
func (pm *PartitionMap) GetBucketRange(bucketNum int) (kMin, kMax int) {
	kMin, kMax = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

func (pm *PartitionMap) Split1D(threadNum int) (bucket [2]int) {
	// This routine splits one dimension into c.ParallelDegree pieces, with a maximum imbalance of one item
	var (
		Npart            = pm.MaxIndex / (pm.ParallelDegree)
		startAdd, endAdd int
		remainder        int
	)
	remainder = pm.MaxIndex % pm.ParallelDegree
	if remainder != 0 { // spread the remainder over the first chunks evenly
		if threadNum+1 > remainder {
			startAdd = remainder
			endAdd = 0
		} else {
			startAdd = threadNum
			endAdd = 1
		}
	}
	bucket[0] = threadNum*Npart + startAdd
	bucket[1] = bucket[0] + Npart + endAdd
	return
}

/*
Reduce sums partial(kMin, kMax) over every bucket of the partition map, one goroutine per bucket. Partial sums are
combined in bucket order after all goroutines finish, so for a fixed ParallelDegree the result does not depend on
scheduling. The first error cancels the context passed to the remaining buckets.
*/
func (pm *PartitionMap) Reduce(ctx context.Context,
	partial func(ctx context.Context, kMin, kMax int) (float64, error)) (sum float64, err error) {
	var (
		sums = make([]float64, pm.ParallelDegree)
	)
	if pm.ParallelDegree == 1 {
		return partial(ctx, 0, pm.MaxIndex)
	}
	g, gctx := errgroup.WithContext(ctx)
	for np := 0; np < pm.ParallelDegree; np++ {
		np := np
		kMin, kMax := pm.GetBucketRange(np)
		g.Go(func() (err error) {
			sums[np], err = partial(gctx, kMin, kMax)
			return
		})
	}
	if err = g.Wait(); err != nil {
		return
	}
	for _, s := range sums {
		sum += s
	}
	return
}
