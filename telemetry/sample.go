// Package telemetry implements the sliding-window sample collector and
// min-max normalizer that convert raw simulator queue state into the
// fixed-length feature vectors a reflex consumes.
package telemetry

// FeatureCount is the fixed width of every telemetry schema: both the
// transport and compute schemas present exactly ten single-precision
// features in a fixed order.
const FeatureCount = 10

// Sample is implemented by both telemetry schemas so the window
// collector and normalizer can operate generically over either.
type Sample interface {
	// Features returns the raw (unnormalized) feature vector in the
	// schema's fixed order.
	Features() [FeatureCount]float32
}

// TransportSample is the packet-transport telemetry schema: queue
// depth, enqueue/dequeue rate, latency percentiles, byte rates, packet
// size statistics, and an RTT estimate.
//
// enqueue_rate, bytes_in/out_per_sec, and rtt_ewma_us are populated as
// zero placeholders by simtransport's reference collector. This is a
// known, documented limitation, not a bug, preserved so trained
// reflexes stay consistent with the convention they were trained
// against.
type TransportSample struct {
	QueueDepth      uint32
	EnqueueRate     float32
	DequeueRate     float32
	LatencyP50US    float32
	LatencyP95US    float32
	BytesInPerSec   float64
	BytesOutPerSec  float64
	PacketSizeMean  float32
	PacketSizeVar   float32
	RTTEwmaUS       float32
}

func (s TransportSample) Features() [FeatureCount]float32 {
	return [FeatureCount]float32{
		float32(s.QueueDepth),
		s.EnqueueRate,
		s.DequeueRate,
		s.LatencyP50US,
		s.LatencyP95US,
		float32(s.BytesInPerSec),
		float32(s.BytesOutPerSec),
		s.PacketSizeMean,
		s.PacketSizeVar,
		s.RTTEwmaUS,
	}
}

// TransportFeatureNames names the TransportSample feature vector in
// order, for logging and inspection.
var TransportFeatureNames = [FeatureCount]string{
	"queue_depth", "enqueue_rate", "dequeue_rate",
	"latency_p50_us", "latency_p95_us",
	"bytes_in_per_sec", "bytes_out_per_sec",
	"packet_size_mean", "packet_size_var", "rtt_ewma_us",
}

// ComputeSample is the worker-pool telemetry schema: run-queue length,
// arrival/completion rate, task-time percentiles, worker utilization,
// a coarse context-switch estimate, task-size statistics, and idle
// worker count.
type ComputeSample struct {
	RunQueueLen        uint32
	ArrivalRate        float32
	CompletionRate     float32
	TaskTimeP50US      float32
	TaskTimeP95US      float32
	WorkerUtil         float32
	CtxSwitchesPerSec  float32
	TaskSizeMean       float32
	TaskSizeVar        float32
	IdleWorkerCount    uint32
}

func (s ComputeSample) Features() [FeatureCount]float32 {
	return [FeatureCount]float32{
		float32(s.RunQueueLen),
		s.ArrivalRate,
		s.CompletionRate,
		s.TaskTimeP50US,
		s.TaskTimeP95US,
		s.WorkerUtil,
		s.CtxSwitchesPerSec,
		s.TaskSizeMean,
		s.TaskSizeVar,
		float32(s.IdleWorkerCount),
	}
}

// ComputeFeatureNames names the ComputeSample feature vector in order.
var ComputeFeatureNames = [FeatureCount]string{
	"runq_len", "arrival_rate", "completion_rate",
	"task_time_p50_us", "task_time_p95_us", "worker_util",
	"ctx_switches_per_sec", "task_size_mean", "task_size_var",
	"idle_worker_count",
}
