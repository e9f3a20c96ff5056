package configs

// Report holds reporting defaults. Timezone accepts an IANA name or a
// common abbreviation (EST, PST, ...); unknown values degrade to UTC at
// resolution time. WeeksPast/WeeksFuture bound the outlook horizon.
// RefreshCron is a robfig/cron expression controlling how often the rollup
// views are recomputed and persisted by the serve command.
type Report struct {
	Timezone    string `env:"TIMEZONE" envDefault:"UTC"`
	WeeksPast   int    `env:"WEEKS_PAST" envDefault:"6"`
	WeeksFuture int    `env:"WEEKS_FUTURE" envDefault:"6"`
	RefreshCron string `env:"REFRESH_CRON" envDefault:"@every 15m"`
}
