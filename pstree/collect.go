// Package pstree reads OS process metadata and renders the hierarchy.
// It is a pure read/render pipeline, unrelated to the messaging core.
package pstree

import (
	"github.com/shirou/gopsutil/process"

	"pipechat/domain"
)

// Snapshot reads every process visible to this user. Entries that vanish
// mid-scan are skipped: a snapshot of a live process table is best-effort
// by nature.
func Snapshot() ([]domain.Process, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, err
	}
	nodes := make([]domain.Process, 0, len(procs))
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}
		ppid, err := p.Ppid()
		if err != nil {
			continue
		}
		status := domain.UNKNOWN
		if raw, err := p.Status(); err == nil {
			status = domain.ToStatus(raw)
		}
		nodes = append(nodes, domain.Process{
			PID:    domain.PID(p.Pid),
			PPID:   domain.PID(ppid),
			Name:   name,
			Status: status,
		})
	}
	return nodes, nil
}
