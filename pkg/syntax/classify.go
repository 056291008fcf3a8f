// Package syntax classifies already-split display tokens into coloring
// categories for the host editor. Classification is a pure lookup with
// no traversal state; it never consults the command tree.
package syntax

import (
	"regexp"
	"strings"
)

// Category is the display class of a single token.
type Category int

const (
	// None is the fallback for tokens no rule matches.
	None Category = iota
	// Whitespace marks a token that is entirely blank.
	Whitespace
	// IPAddress matches dotted-quad IPv4 literals, with or without a
	// prefix length.
	IPAddress
	// MACAddress matches colon-separated or dot-grouped hex MACs.
	MACAddress
	// Number matches bare integers.
	Number
	// QuotedString matches double-quoted literals.
	QuotedString
	// Command covers primary top-level command words.
	Command
	// Negation covers negating and service-affecting keywords.
	Negation
	// Protocol covers protocol names.
	Protocol
	// Parameter covers modifier and object keywords.
	Parameter
	// Action covers configuration action verbs.
	Action
)

var categoryNames = map[Category]string{
	None:         "none",
	Whitespace:   "whitespace",
	IPAddress:    "ip",
	MACAddress:   "mac",
	Number:       "number",
	QuotedString: "string",
	Command:      "command",
	Negation:     "negation",
	Protocol:     "protocol",
	Parameter:    "parameter",
	Action:       "action",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "none"
}

var (
	ipPattern     = regexp.MustCompile(`^\d{1,3}(\.\d{1,3}){3}(/\d{1,2})?$`)
	macColon      = regexp.MustCompile(`^([0-9A-Fa-f]{2}:){5}[0-9A-Fa-f]{2}$`)
	macDotted     = regexp.MustCompile(`^[0-9A-Fa-f]{4}(\.[0-9A-Fa-f]{4}){2}$`)
	numberPattern = regexp.MustCompile(`^\d+$`)
	quotedPattern = regexp.MustCompile(`^"[^"]*"$`)
)

// The five keyword sets are disjoint and checked in this order after
// the literal patterns. First hit wins.
var keywordSets = []struct {
	category Category
	words    map[string]bool
}{
	{Command, wordSet(
		"show", "configure", "config", "enable", "disable", "exit", "end",
		"interface", "router", "hostname", "line", "access-list", "banner",
		"copy", "write", "reload", "debug", "undebug", "ping", "traceroute",
		"terminal", "clock", "vlan", "crypto", "username", "snmp-server",
	)},
	{Negation, wordSet(
		"no", "shutdown", "deny", "drop", "reject", "erase", "delete",
		"clear", "default",
	)},
	{Protocol, wordSet(
		"ip", "ipv6", "ospf", "bgp", "isis", "eigrp", "rip", "mpls",
		"tcp", "udp", "icmp", "arp", "cdp", "lldp", "stp", "hsrp", "vrrp",
		"dhcp", "dns", "ntp", "snmp", "ssh", "telnet", "http", "https",
		"ftp", "tftp", "lacp", "pim", "igmp",
	)},
	{Parameter, wordSet(
		"brief", "detail", "summary", "status", "neighbors", "neighbor",
		"database", "route", "routes", "running-config", "startup-config",
		"version", "history", "statistics", "counters", "memory", "processes",
		"inventory", "trunk", "switchport", "address", "mask", "area",
		"network", "passive-interface", "duplex", "speed", "mtu",
		"description", "in", "out", "vrf",
	)},
	{Action, wordSet(
		"set", "add", "remove", "permit", "allow", "apply", "attach",
		"bind", "redistribute", "advertise", "activate", "match", "log",
	)},
}

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// Classify returns exactly one category for a token. Evaluation order
// is whitespace run, then literal patterns, then the keyword sets, then
// None. Keyword matching is case-insensitive.
func Classify(token string) Category {
	if token == "" || strings.TrimSpace(token) == "" {
		return Whitespace
	}
	switch {
	case ipPattern.MatchString(token):
		return IPAddress
	case macColon.MatchString(token) || macDotted.MatchString(token):
		return MACAddress
	case numberPattern.MatchString(token):
		return Number
	case quotedPattern.MatchString(token):
		return QuotedString
	}
	lower := strings.ToLower(token)
	for _, set := range keywordSets {
		if set.words[lower] {
			return set.category
		}
	}
	return None
}
