package sqlinline

const QInsertAnalyticsEvent = `--sql 5e1b9d36-a274-4c08-bf65-30d8c2e7a419
insert into analytics_events (id, team_id, event_type, metadata, created_at)
values ($1, $2, $3, $4, now());
`
