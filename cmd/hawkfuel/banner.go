package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	bannerDimStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	bannerWingStyle    = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	bannerTitleStyle   = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	bannerTaglineStyle = lipgloss.NewStyle().Foreground(colorPrimaryDark).Italic(true)
	bannerVersionStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

func renderBanner() string {
	wing := bannerWingStyle.Render("︿")
	dot := bannerDimStyle.Render("·")
	title := bannerTitleStyle.Render("HAWKFUEL")

	lines := []string{
		"      " + wing + "   " + wing,
		"    " + dot + "  " + title + "  " + dot,
	}
	return strings.Join(lines, "\n")
}

func renderBannerWithTagline() string {
	banner := renderBanner()
	tagline := bannerTaglineStyle.Render("    fuel for the climb")
	ver := bannerVersionStyle.Render("         " + version)

	return strings.Join([]string{banner, tagline, ver}, "\n")
}
