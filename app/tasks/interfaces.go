package tasks

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application to manage background cache pre-warming.
// Example usage:
//
//	scheduler := NewScheduler(engine, markets)
//	scheduler.Start()
//	defer scheduler.Stop()
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
