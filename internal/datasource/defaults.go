package datasource

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterDefaults registers the six SQL-backed sources and the one
// external FX REST source the documentation core requires (spec.md
// §4.C2). It is called explicitly at orchestrator construction time, not
// from a package init(), so tests can build a Registry against a
// different pool or none at all.
func RegisterDefaults(reg *Registry, pool *pgxpool.Pool) {
	reg.Register(Descriptor{
		Name:   "project_info",
		Kind:   KindSQL,
		Params: ParamSchema{"project_id": "internal project identifier"},
		ResultShape: []map[string]string{
			{"name": "string", "internal_code": "string", "fiscal_year": "int", "company_name": "string", "company_nip": "string"},
		},
		Fetch: SQLSource(pool, "project_info", `
			SELECT name, internal_code, fiscal_year, company_name, company_nip
			FROM projects WHERE id = :project_id`),
	})

	reg.Register(Descriptor{
		Name:   "expenses_summary",
		Kind:   KindSQL,
		Params: ParamSchema{"project_id": "internal project identifier"},
		ResultShape: []map[string]string{
			{"total_gross": "money", "total_net": "money", "total_hours": "float"},
		},
		Fetch: SQLSource(pool, "expenses_summary", `
			SELECT SUM(gross_amount) AS total_gross, SUM(net_amount) AS total_net
			FROM expenses WHERE project_id = :project_id`),
	})

	reg.Register(Descriptor{
		Name:   "expenses_by_category",
		Kind:   KindSQL,
		Params: ParamSchema{"project_id": "internal project identifier"},
		ResultShape: []map[string]string{
			{"category": "string", "gross_amount": "money", "net_amount": "money"},
		},
		Fetch: SQLSource(pool, "expenses_by_category", `
			SELECT category, gross_amount, net_amount
			FROM expenses WHERE project_id = :project_id ORDER BY category`),
	})

	reg.Register(Descriptor{
		Name:   "timesheet_summary",
		Kind:   KindSQL,
		Params: ParamSchema{"project_id": "internal project identifier"},
		ResultShape: []map[string]string{
			{"worker": "string", "hours": "float", "total_hours": "float"},
		},
		Fetch: SQLSource(pool, "timesheet_summary", `
			SELECT worker, SUM(hours) AS hours
			FROM daily_time_entries WHERE project_id = :project_id GROUP BY worker`),
	})

	reg.Register(Descriptor{
		Name:   "nexus_calculation",
		Kind:   KindSQL,
		Params: ParamSchema{"project_id": "internal project identifier"},
		ResultShape: []map[string]string{
			{"nexus": "float"},
		},
		Fetch: SQLSource(pool, "nexus_calculation", `
			SELECT nexus FROM nexus_calculations WHERE project_id = :project_id`),
	})

	reg.Register(Descriptor{
		Name:   "revenues",
		Kind:   KindSQL,
		Params: ParamSchema{"project_id": "internal project identifier"},
		ResultShape: []map[string]string{
			{"client_name": "string", "gross_amount": "money", "net_amount": "money"},
		},
		Fetch: SQLSource(pool, "revenues", `
			SELECT client_name, gross_amount, net_amount
			FROM revenues WHERE project_id = :project_id ORDER BY invoice_date`),
	})

	reg.Register(Descriptor{
		Name:   "nbp_exchange_rate",
		Kind:   KindREST,
		Params: ParamSchema{"currency": "ISO 4217 code", "date": "YYYY-MM-DD"},
		ResultShape: []map[string]string{
			{"rate": "float", "effectiveDate": "date"},
		},
		Fetch: RESTSource(http.DefaultClient, "nbp_exchange_rate", "GET",
			"https://api.nbp.pl/api/exchangerates/rates/a/{currency}/{date}/?format=json"),
	})
}
