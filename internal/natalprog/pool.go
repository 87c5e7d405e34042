// Public domain.

package natalprog

// job pairs a record with the channel its result is returned on.
type job struct {
	rec record
	rch chan string
}

// process computes the records of recCh on up to maxWorkers goroutines and
// passes results to emit in input order.  It returns nil once recCh is
// closed and every result is emitted, or the first error received on errCh.
func process(recCh <-chan record, errCh <-chan error, maxWorkers int,
	solve func(record) string, emit func(string)) error {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	// prCh keeps result channels in submission order.  It is buffered so a
	// fast worker can drop off a result without waiting for workers ahead
	// of it.
	prCh := make(chan chan string, maxWorkers*2)
	jobCh := make(chan *job)

	// dispatcher.  for each record, attach a return channel that works like
	// a ticket for picking up the result, hand the record to a worker and
	// queue the ticket for printing.
	go func() {
		for r := range recCh {
			rch := make(chan string, 1)
			jobCh <- &job{r, rch}
			prCh <- rch
		}
		close(jobCh)
		close(prCh)
	}()

	// workers are started only as the dispatcher calls for them, up to
	// maxWorkers.  there may be more cores than records.
	go func() {
		for n := 0; n < maxWorkers; n++ {
			j, ok := <-jobCh
			if !ok {
				return
			}
			go work(j, jobCh, solve)
		}
	}()

	for {
		select {
		case err := <-errCh:
			return err
		case rch, ok := <-prCh:
			if !ok {
				return nil
			}
			select {
			case err := <-errCh:
				return err
			case r := <-rch:
				emit(r)
			}
		}
	}
}

// work solves j and then further jobs from jobCh until it is closed.
func work(j *job, jobCh <-chan *job, solve func(record) string) {
	for ok := true; ok; j, ok = <-jobCh {
		j.rch <- solve(j.rec) // buffered.  drop off the result and continue
	}
}
