package task

// Toggle flips IsCompleted on the task with the given id and returns the full
// updated list for the caller to persist. The input slice is not modified.
// An unknown id leaves the list unchanged and reports false.
func Toggle(tasks []Task, id string) ([]Task, bool) {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	for i := range out {
		if out[i].ID == id {
			out[i].IsCompleted = !out[i].IsCompleted
			return out, true
		}
	}
	return out, false
}

// CompletedCount returns the number of completed tasks.
func CompletedCount(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if t.IsCompleted {
			n++
		}
	}
	return n
}

// Progress returns the completed fraction in [0,1]; 0 when there are no tasks.
func Progress(tasks []Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	return float64(CompletedCount(tasks)) / float64(len(tasks))
}

// Find returns the task with the given id.
func Find(tasks []Task, id string) (Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}
