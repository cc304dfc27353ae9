package request

import (
	"strconv"

	"github.com/hosnas/letsencrypt-vesta/internal/errors"
)

// Options are the global settings collected from the command line.
// When an option is given more than once the last occurrence wins.
type Options struct {
	Email     string // -m: contact email for the certificate authority
	RenewDays int    // -a: schedule a re-run this many days out (0 = none)
	DryRun    bool   // --dry-run: stop after aggregation, print the manifest
	Staging   bool   // --staging: request from the staging CA
	Verbose   bool   // --verbose/-v: enable debug logging
}

// Interpreter parses the interleaved command line
//
//	[-m email] [-u] user1 [domain1 domain2 ...] [-u user2 [...]] [-a days]
//
// feeding each completed (user, explicit domains) group into the
// aggregator. Global options may appear anywhere, including inside a
// domain group.
type Interpreter struct {
	agg *Aggregator
}

// parse states: expecting a user name, or collecting domains for the
// currently open user group.
type state int

const (
	expectUser state = iota
	collectingDomains
)

// NewInterpreter creates an Interpreter feeding the given aggregator.
func NewInterpreter(agg *Aggregator) *Interpreter {
	return &Interpreter{agg: agg}
}

// Run walks the argument list. Each -u token (and end of input) flushes the
// open group into the aggregator. An empty argument list is a usage error;
// nothing is flushed and no panel call is made in that case.
func (it *Interpreter) Run(args []string) (*Options, error) {
	if len(args) == 0 {
		return nil, errors.Usage("no arguments supplied")
	}

	opts := &Options{}
	st := expectUser
	var user string
	var domains []string

	flush := func() {
		if st == collectingDomains {
			it.agg.AddAccount(user, domains)
		}
		user = ""
		domains = nil
		st = expectUser
	}

	for i := 0; i < len(args); i++ {
		switch tok := args[i]; tok {
		case "-u":
			flush()
		case "-m":
			i++
			if i >= len(args) {
				return nil, errors.Usage("-m requires an email address")
			}
			opts.Email = args[i]
		case "-a":
			i++
			if i >= len(args) {
				return nil, errors.Usage("-a requires a number of days")
			}
			days, err := strconv.Atoi(args[i])
			if err != nil || days < 0 {
				return nil, errors.Usage("-a requires a non-negative number of days")
			}
			opts.RenewDays = days
		case "--dry-run":
			opts.DryRun = true
		case "--staging":
			opts.Staging = true
		case "--verbose", "-v":
			opts.Verbose = true
		default:
			if st == expectUser {
				user = tok
				st = collectingDomains
			} else {
				domains = append(domains, tok)
			}
		}
	}
	flush()

	return opts, nil
}
