package rx

// ShareConfig controls how a shared stream builds and recycles its junction.
type ShareConfig[T any] struct {
	// Connector builds the junction subject. Nil means NewSubject.
	Connector func() SubjectLike[T]

	// ResetOnError drops the junction after an upstream error so the next
	// observer reconnects.
	ResetOnError bool

	// ResetOnComplete drops the junction after upstream completion.
	ResetOnComplete bool

	// ResetOnRefCountZero unsubscribes upstream and drops the junction when
	// the last observer leaves.
	ResetOnRefCountZero bool
}

// Share multicasts src through a junction created lazily by the first
// observer. Upstream is subscribed once per junction.
func Share[T any](src *Observable[T], cfg ShareConfig[T]) *Observable[T] {
	if src == nil {
		panic(ErrNilSource)
	}
	if cfg.Connector == nil {
		cfg.Connector = func() SubjectLike[T] { return NewSubject[T]() }
	}

	var (
		subject      SubjectLike[T]
		connection   *Subscription
		connected    bool
		refCount     int
		hasErrored   bool
		hasCompleted bool
	)

	reset := func() {
		subject, connection = nil, nil
		connected, hasErrored, hasCompleted = false, false, false
	}

	return New(func(s *Subscriber[T]) func() {
		refCount++
		if subject == nil {
			subject = cfg.Connector()
		}
		junction := subject
		inner := junction.Subscribe(s)

		if !connected {
			connected = true
			connection = src.Subscribe(Funcs[T]{
				OnNext: junction.Next,
				OnError: func(err error) {
					hasErrored = true
					if cfg.ResetOnError {
						reset()
					}
					junction.Error(err)
				},
				OnComplete: func() {
					hasCompleted = true
					if cfg.ResetOnComplete {
						reset()
					}
					junction.Complete()
				},
			})
		}

		return func() {
			refCount--
			inner.Unsubscribe()
			if refCount == 0 && cfg.ResetOnRefCountZero && !hasErrored && !hasCompleted {
				conn := connection
				reset()
				conn.Unsubscribe()
			}
		}
	})
}

// DefaultShareConfig resets on error, completion and when the last observer
// leaves, so every fresh observer after a reset reconnects upstream.
func DefaultShareConfig[T any]() ShareConfig[T] {
	return ShareConfig[T]{
		ResetOnError:        true,
		ResetOnComplete:     true,
		ResetOnRefCountZero: true,
	}
}
