// Command pmallocbench drives concurrent alloc/free traffic against
// pmalloc and reports the total number of allocations, frees and failed
// allocations across all workers.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"

	"github.com/koko1996/Parallel-Memory-Allocator/pmalloc"
)

var options struct {
	goroutines int
	repeat     int
	maxsize    int
	arenamb    int
}

func argParse() {
	flag.IntVar(&options.goroutines, "goroutines", 16,
		"number of concurrent workers")
	flag.IntVar(&options.repeat, "repeat", 100000,
		"alloc/free cycles per worker")
	flag.IntVar(&options.maxsize, "maxsize", 4096,
		"largest request size generated, in bytes")
	flag.IntVar(&options.arenamb, "arenamb", 256,
		"backing arena capacity, in MiB")
	flag.Parse()
}

func main() {
	argParse()

	cfg := pmalloc.DefaultConfig()
	cfg["arena.capacity"] = int64(options.arenamb) << 20

	if err := pmalloc.Initialize(cfg); err != nil {
		fmt.Println("pmallocbench: init failed:", err)
		return
	}
	defer pmalloc.Shutdown()

	var allocated, freed, failed int64
	var wg sync.WaitGroup
	wg.Add(options.goroutines)
	for g := 0; g < options.goroutines; g++ {
		go worker(g, &allocated, &freed, &failed, &wg)
	}
	wg.Wait()

	fmt.Printf("goroutines %v repeat %v maxsize %v\n",
		options.goroutines, options.repeat, options.maxsize)
	fmt.Printf("allocated %v freed %v failed %v\n", allocated, freed, failed)
}

func worker(seed int, allocated, freed, failed *int64, wg *sync.WaitGroup) {
	defer wg.Done()

	rng := rand.New(rand.NewSource(int64(seed) + 1))
	for i := 0; i < options.repeat; i++ {
		size := uintptr(1 + rng.Intn(options.maxsize))
		ptr := pmalloc.Allocate(size)
		if ptr == nil {
			atomic.AddInt64(failed, 1)
			continue
		}
		atomic.AddInt64(allocated, 1)

		if rng.Intn(4) != 0 {
			pmalloc.Release(ptr)
			atomic.AddInt64(freed, 1)
		}
	}
}
