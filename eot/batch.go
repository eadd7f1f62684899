package eot

import (
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
)

// Source is one font of a batch.
type Source struct {
	Name string // used in log messages and copied to the result
	Data []byte
}

// Result is the outcome of converting one Source.
type Result struct {
	Name string
	EOT  []byte
	Err  error
}

// ConvertAll converts every font of the batch with at most workers parallel
// conversions (runtime.NumCPU() if workers < 1). The results are in the
// order of fonts. A failing font only sets the Err of its own result.
func ConvertAll(fonts []Source, workers int) []Result {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	results := make([]Result, len(fonts))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = convertOne(fonts[idx])
			}
		}()
	}
	for i := range fonts {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}

func convertOne(src Source) Result {
	res := Result{Name: src.Name}
	res.EOT, res.Err = Convert(src.Data)
	if res.Err != nil {
		log.WithFields(logrus.Fields{"font": src.Name}).Debugf("conversion failed: %s", res.Err)
		return res
	}
	log.WithFields(logrus.Fields{
		"font": src.Name,
		"size": len(res.EOT),
	}).Debug("converted")
	return res
}
