package policy

import (
	"context"
	"sync"

	"github.com/openfroyo/froyo-analyzer/pkg/analyzer"
)

// evalTask is one policy evaluation within an Analyze or AnalyzeStack call.
type evalTask struct {
	pack     *Pack
	policy   *compiledPolicy
	settings effectiveSettings
	input    map[string]interface{}
	urn      string
}

// runTasks evaluates tasks on at most config.Parallelism workers. Each task
// writes into its own slot, so the returned diagnostics follow task order
// regardless of which worker finishes first. Inputs are shared read-only.
func (e *Engine) runTasks(ctx context.Context, tasks []evalTask) []analyzer.Diagnostic {
	results := make([][]analyzer.Diagnostic, len(tasks))

	workerCount := e.config.Parallelism
	if workerCount > len(tasks) {
		workerCount = len(tasks)
	}

	if workerCount <= 1 {
		for i := range tasks {
			results[i] = e.runTask(ctx, &tasks[i])
		}
	} else {
		workQueue := make(chan int, len(tasks))
		for i := range tasks {
			workQueue <- i
		}
		close(workQueue)

		var wg sync.WaitGroup
		for w := 0; w < workerCount; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range workQueue {
					results[i] = e.runTask(ctx, &tasks[i])
				}
			}()
		}
		wg.Wait()
	}

	var total int
	for _, r := range results {
		total += len(r)
	}
	diags := make([]analyzer.Diagnostic, 0, total)
	for _, r := range results {
		diags = append(diags, r...)
	}
	return diags
}

func (e *Engine) runTask(ctx context.Context, t *evalTask) []analyzer.Diagnostic {
	return e.evaluate(ctx, t.pack, t.policy, t.settings, t.input, t.urn)
}
