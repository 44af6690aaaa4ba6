package workers

// Workers aggregates background workers and runs or stops them as one unit.
type Workers struct {
	workers []Worker
}

// NewWorkers builds an aggregate over the given workers.
func NewWorkers(ws ...Worker) *Workers {
	return &Workers{workers: ws}
}

// Run starts every worker in order.
func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

// Stop stops every worker in order.
func (w *Workers) Stop() {
	for _, worker := range w.workers {
		worker.Stop()
	}
}
