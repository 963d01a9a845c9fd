package models

import "time"

// ServerStatsResponse contains server runtime statistics.
type ServerStatsResponse struct {
	Uptime         string                `json:"uptime"`
	UptimeSeconds  int64                 `json:"uptime_seconds"`
	StartTime      time.Time             `json:"start_time"`
	GoRoutines     int                   `json:"goroutines"`
	MemoryAllocMB  float64               `json:"memory_alloc_mb"`
	NumCPU         int                   `json:"num_cpu"`
	Process        *ProcessStats         `json:"process,omitempty"`
	DNSStats       DNSStatsResponse      `json:"dns"`
	BlocklistStats BlocklistSizeResponse `json:"blocklist"`
}

// ProcessStats describes the sinkhole process as seen by the OS.
type ProcessStats struct {
	RSSMB          float64 `json:"rss_mb"`
	CPUPercent     float64 `json:"cpu_percent"`
	HostMemUsedPct float64 `json:"host_mem_used_pct"`
}

// DNSStatsResponse contains DNS query statistics.
type DNSStatsResponse struct {
	QueriesTotal uint64  `json:"queries_total"`
	Blocked      uint64  `json:"blocked"`
	Passed       uint64  `json:"passed"`
	Rejected     uint64  `json:"rejected"`
	Dropped      uint64  `json:"dropped"`
	SendErrors   uint64  `json:"send_errors"`
	AvgLatencyMs float64 `json:"avg_latency_ms"`
}

// BlocklistSizeResponse summarizes the active blocklist.
type BlocklistSizeResponse struct {
	Entries int `json:"entries"`
	Sources int `json:"sources"`
}
