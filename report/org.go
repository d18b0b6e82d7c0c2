package report

import (
	"io"
	"text/template"
	"time"
)

var orgFuncs = template.FuncMap{
	"date": func(t time.Time) string { return t.Format(time.DateOnly) },
	"stamp": func(t time.Time) string {
		if t.IsZero() {
			t = time.Now()
		}
		return t.Format("2006-01-02 Mon 15:04")
	},
	"prevNAV": previousNAV,
	"pct":     pct,
}

var orgTemplate = template.Must(template.New("fund").Funcs(orgFuncs).Parse(OrgTemplate))

// WriteOrg renders r as an org-mode document.
func WriteOrg(w io.Writer, r Report) error {
	return orgTemplate.Execute(w, r)
}

const OrgTemplate = `* FUND: {{.Fund}}
:PROPERTIES:
:CURRENCY:     {{.Currency}}
{{- with .Summary}}
:START_DATE:   {{date .Start}}
:END_DATE:     {{date .End}}
:WEEKS:        {{.Weeks}}
:UNITS:        {{printf "%.4f" .Units}}
:NAV:          {{printf "%.4f" .EndNAV}}
:NAV_PEAK:     {{printf "%.4f" .PeakNAV}}
:DRAWDOWN_PCT: {{printf "%.2f" .CurrentDrawdownPct}}
:MAX_DD_PCT:   {{printf "%.2f" .MaxDrawdownPct}}
{{- end}}
:CREATED:      [{{stamp .Generated}}]
:END:

** Summary
- Fund value:    *{{.Money .Summary.FundValue}}*
- NAV return:    *{{pct .Summary.NAVReturnPct}}*
- Max drawdown:  *{{pct .Summary.MaxDrawdownPct}}*
- Realised P/L:  {{.Money .Summary.TotalPnL}}
- Charges:       {{.Money .Summary.TotalCharges}}
- Contributions: {{.Money .Summary.Contributions}}
- Redemptions:   {{.Money .Summary.Redemptions}}
{{- if .Summary.Closed}}
- Status:        closed
{{- end}}

** Weekly NAV
| Date | P/L | Charges | Funds In/Out | Prev NAV | Units | Fund Value | NAV | Peak | DD % |
|------+-----+---------+--------------+----------+-------+------------+-----+------+------|
{{- range .Entries}}
| {{date .Date}} | {{printf "%.2f" .RealisedPnL}} | {{printf "%.2f" .Charges}} | {{printf "%.2f" .FundsInOut}} | {{prevNAV .}} | {{printf "%.4f" .OutstandingUnits}} | {{printf "%.2f" .FundValue}} | {{printf "%.4f" .NAV}} | {{printf "%.4f" .NAVPeak}} | {{printf "%.2f" .NAVDrawdown}} |
{{- end}}
`
