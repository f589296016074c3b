package sqlinline

const QEnqueueJob = `--sql 7c1f30da-9a42-4e1b-8fb0-23e6a4c0d9f1
insert into generation_jobs (id, kind, payload, state, attempts, max_attempts, run_at, created_at)
values ($1, $2, $3, 'queued', 0, $4, $5, now());
`

const QClaimJob = `--sql e58b2c91-6d07-43af-92cd-f17a8be04712
with next_job as (
    select id
    from generation_jobs
    where state = 'queued' and run_at <= now()
    order by created_at asc
    for update skip locked
    limit 1
),
updated as (
    update generation_jobs
    set state = 'active', attempts = attempts + 1, started_at = now()
    where id in (select id from next_job)
    returning id, kind, payload, progress_step, progress_percent, attempts, max_attempts, run_at, created_at, started_at
)
select * from updated;
`

const QGetJob = `--sql b9d4a6f3-1c28-47e5-a0b6-8d93e52c7a04
select id, kind, payload, state, progress_step, progress_percent, attempts, max_attempts,
       coalesce(fail_reason, ''), run_at, created_at, started_at, finished_at
from generation_jobs
where id = $1;
`

const QSetJobProgress = `--sql 2a6e8d15-74bf-49c0-bd31-06c5f9e2a873
update generation_jobs
set progress_step = $2, progress_percent = $3
where id = $1;
`

const QCompleteJob = `--sql 91c5de02-38a7-4b64-8e2f-5ab0c47d6e19
update generation_jobs
set state = 'completed', progress_step = 'Done', progress_percent = 100, finished_at = now()
where id = $1;
`

const QFailJob = `--sql 5fd2b7a8-0e93-4c16-97da-3b48e61f0c25
update generation_jobs
set state = 'failed', fail_reason = $2, finished_at = now()
where id = $1;
`

const QRetryJob = `--sql c30a91e6-52d8-4f7b-86c4-7e1f2d9b0a58
update generation_jobs
set state = 'queued', fail_reason = $2, run_at = $3, started_at = null
where id = $1;
`

// Retention deletes mirror the two-sided policy: anything older than the age
// cutoff goes, and beyond that only the newest N finished jobs per state are
// kept.
const QReapJobsByAge = `--sql 8e47c2d0-b1a5-4938-bf62-0d3a7c85e914
delete from generation_jobs
where state = $1 and finished_at < now() - ($2 * interval '1 second');
`

const QReapJobsByCount = `--sql 6b9f0e24-a7d3-41c8-95e0-2f68b1d4c307
delete from generation_jobs
where state = $1 and id not in (
    select id from generation_jobs
    where state = $1
    order by finished_at desc
    limit $2
);
`
