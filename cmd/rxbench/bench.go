package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/delaneyj/rxbridge/component"
	"github.com/delaneyj/rxbridge/hooks"
	"github.com/delaneyj/rxbridge/multicast"
	"github.com/delaneyj/rxbridge/rx"
	"github.com/jamiealquiza/tachymeter"
	"github.com/sirupsen/logrus"
)

type result struct {
	name       string
	components int
	commits    int
	checksum   uint64
	timing     *tachymeter.Metrics
}

// bench mounts n components over one shared stream and times how long each
// upstream emission takes to reach every one of them.
func bench(log logrus.FieldLogger, n, emissions int, deferred bool) result {
	name := "sync"
	if deferred {
		name = "transition"
	}
	log = log.WithFields(logrus.Fields{"scenario": name, "components": n})

	r := component.NewRenderer(
		component.WithLogger(log),
		component.WithErrorBoundary(func(c *component.Component, err error) {
			log.WithError(err).WithField("component", c.ID()).Error("stream failed")
		}),
	)
	upstream := rx.NewSubject[int]()
	shared := multicast.ForUI(upstream.AsObservable())

	seen := make([]int, n)
	components := make([]*component.Component, 0, n)
	for i := range n {
		components = append(components, r.Mount(func(c *component.Component) {
			if deferred {
				if _, v, ok := hooks.UseTransitionObservable(c, shared); ok {
					seen[i] = v
				}
				return
			}
			if v, ok := hooks.UseObservable(c, shared); ok {
				seen[i] = v
			}
		}))
	}

	tach := tachymeter.New(&tachymeter.Config{Size: emissions})
	for v := 1; v <= emissions; v++ {
		start := time.Now()
		upstream.Next(v)
		if deferred {
			r.CommitTransitions()
		}
		tach.AddTime(time.Since(start))
	}

	res := result{name: name, components: n, timing: tach.Calc()}
	digest := xxhash.New()
	for i, c := range components {
		res.commits += c.Commits()
		digest.WriteString(strconv.Itoa(seen[i]))
		c.Unmount()
	}
	res.checksum = digest.Sum64()

	if stale := countStale(seen, emissions); stale > 0 {
		log.WithField("stale", stale).Warn("components did not render the last value")
	}
	log.WithField("commits", res.commits).Debug("done")
	return res
}

func countStale(seen []int, want int) int {
	stale := 0
	for _, v := range seen {
		if v != want {
			stale++
		}
	}
	return stale
}

func (r result) label() string {
	return fmt.Sprintf("%s: %d", r.name, r.components)
}
