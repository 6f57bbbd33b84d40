package handlers

import (
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

type SystemStats struct {
	CPUPercent  float64 `json:"cpu_percent"`
	Cores       int     `json:"cores"`
	MemTotal    uint64  `json:"mem_total"`
	MemUsed     uint64  `json:"mem_used"`
	MemPercent  float64 `json:"mem_percent"`
	DiskTotal   uint64  `json:"disk_total"`
	DiskUsed    uint64  `json:"disk_used"`
	DiskPercent float64 `json:"disk_percent"`
	Hostname    string  `json:"hostname"`
	Uptime      uint64  `json:"uptime"`
}

// GetSystemStats is the admin-only host snapshot shown on the admin screen.
func (h *Handler) GetSystemStats(c *fiber.Ctx) error {
	stats := SystemStats{Cores: runtime.NumCPU()}

	if percent, err := cpu.Percent(200*time.Millisecond, false); err == nil && len(percent) > 0 {
		stats.CPUPercent = percent[0]
	}
	if memInfo, err := mem.VirtualMemory(); err == nil {
		stats.MemTotal = memInfo.Total
		stats.MemUsed = memInfo.Used
		stats.MemPercent = memInfo.UsedPercent
	}
	if usage, err := disk.Usage("/"); err == nil {
		stats.DiskTotal = usage.Total
		stats.DiskUsed = usage.Used
		stats.DiskPercent = usage.UsedPercent
	}
	if info, err := host.Info(); err == nil {
		stats.Hostname = info.Hostname
		stats.Uptime = info.Uptime
	}

	return c.JSON(stats)
}
