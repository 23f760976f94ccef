package main

import (
	"courier-map-service/internal/domain"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var statusColor = map[domain.Status]*color.Color{
	domain.StatusPending:   color.New(color.FgBlue),
	domain.StatusDelivered: color.New(color.FgGreen),
	domain.StatusFailed:    color.New(color.FgRed),
}

func printView(w io.Writer, routeID int, v domain.View) {
	bold := color.New(color.Bold)
	bold.Fprintf(w, "route %d: %d stops, %d zones\n", routeID, len(v.Stops), v.ZoneCount)

	for _, s := range v.Stops {
		zone := "-"
		if s.Zone != nil {
			zone = fmt.Sprintf("%d %s", s.Zone.Index, s.Zone.Color)
		}

		codes := make([]string, 0, len(s.Packages))
		for _, p := range s.Packages {
			codes = append(codes, p.TrackingCode)
		}

		label := s.AddressKey
		if label == "" {
			label = s.Packages[0].Address
		}

		fmt.Fprintf(w, "%3d  ", s.DisplayIndex)
		statusColor[s.DominantStatus].Fprintf(w, "%-9s", s.DominantStatus)
		fmt.Fprintf(w, "  zone=%-10s  %-32s  %s\n", zone, label, strings.Join(codes, ","))
	}

	fmt.Fprintf(w, "pending=%d delivered=%d failed=%d\n", v.Counts.Pending, v.Counts.Delivered, v.Counts.Failed)
}
