//go:build !linux

package sysmon

func platformAffinityCount() int { return 0 }
