package main

import (
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/go-teaching-kernel/procsched/kernel"
)

// renderPs prints the ps listing (pid, name, state, priority) as a table,
// the tablewriter-based replacement for ps.c's raw printf loop, same role
// tablewriter plays for `proctor ls` in the retrieval pack.
func renderPs(rows []kernel.ProcSnapshot) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"PID", "NAME", "STATE", "PRIORITY"})
	for _, r := range rows {
		table.Append([]string{
			fmtPid(r.Pid), r.Name, r.State, fmtInt(r.Priority),
		})
	}
	table.Render()
}

// renderPsinfo prints the extended psinfo listing — the process table
// (with parent pid and size) followed by the per-CPU table — fixing the
// two bugs spec §9 flags in the source this is modeled on: every row's
// state is copied in full, and the scan never stops early.
func renderPsinfo(procs []kernel.ProcInfo, cpus []kernel.CPUSnapshot) {
	ptable := tablewriter.NewWriter(os.Stdout)
	ptable.SetHeader([]string{"PID", "PPID", "NAME", "STATE", "PRIORITY", "SIZE"})
	for _, r := range procs {
		ptable.Append([]string{
			fmtPid(r.Pid), fmtPid(r.PPid), r.Name, r.State, fmtInt(r.Priority), fmtUint(r.Size),
		})
	}
	ptable.Render()

	ctable := tablewriter.NewWriter(os.Stdout)
	ctable.SetHeader([]string{"CPU", "RUNNING"})
	for _, c := range cpus {
		ctable.Append([]string{fmtInt(c.CPUNum), c.Name})
	}
	ctable.Render()
}

func fmtInt(n int) string     { return strconv.Itoa(n) }
func fmtUint(n uint64) string { return strconv.FormatUint(n, 10) }
