// Command svsdprofile drives the Codec's Encode/Decode hot path under
// pprof, both the CPU/heap sampler exposed over HTTP and a written heap
// snapshot for offline inspection.
package main

import (
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/tiannian/pufu"
)

type sample struct {
	Mod      []int8
	Integers []int16
	Float3   []float32
	Float6   []float64
	Tags     []string
}

func main() {
	go func() {
		log.Println(http.ListenAndServe("localhost:6060", nil))
	}()

	f, err := os.Create("mem.prof")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	runtime.MemProfileRate = 1

	z := sample{
		Mod:      []int8{12, 10, 13, 0},
		Integers: []int16{100, 250, 300},
		Float3:   []float32{12.13, 16.23, 75.1},
		Float6:   []float64{100.5, 165.63, 153.5},
		Tags:     []string{"azerty", "hello", "world", "random"},
	}

	codec := pufu.NewCodec(pufu.DefaultConfig())
	for i := 0; i < 10000; i++ {
		data, err := codec.Encode(z)
		if err != nil {
			log.Fatal(err)
		}
		res := &sample{}
		if err := codec.Decode(data, res); err != nil {
			log.Fatal(err)
		}
	}

	if err := pprof.WriteHeapProfile(f); err != nil {
		log.Fatal(err)
	}
	time.Sleep(5 * time.Minute)
}
