package cmd

import (
	"bytes"
	"fmt"
	"runtime"

	"github.com/olekukonko/tablewriter"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/smukherjee2016/sayo-pbr/tracer"
	"github.com/urfave/cli"
)

// List host CPUs and the default worker pool size.
func ShowSysInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	cpus, err := cpu.Info()
	if err != nil {
		return fmt.Errorf("could not query cpu info: %w", err)
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"CPU", "Model", "Cores", "Speed"})
	for _, info := range cpus {
		table.Append([]string{
			fmt.Sprintf("%d", info.CPU),
			info.ModelName,
			fmt.Sprintf("%d", info.Cores),
			fmt.Sprintf("%3.2f GHz", info.Mhz/1000),
		})
	}
	table.Render()

	buf.WriteString(fmt.Sprintf("\nPlatform       %s/%s\n", runtime.GOOS, runtime.GOARCH))
	buf.WriteString(fmt.Sprintf("Render workers %d\n", tracer.DefaultWorkers()))
	if vm, err := mem.VirtualMemory(); err == nil {
		buf.WriteString(fmt.Sprintf("Memory         %d MiB total, %d MiB available\n", vm.Total>>20, vm.Available>>20))
	}

	logger.Noticef("system information\n%s", buf.String())
	return nil
}
