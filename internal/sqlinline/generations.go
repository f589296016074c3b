package sqlinline

const generationColumns = `id, team_id, user_id, brand_id, coalesce(product_id, ''), coalesce(template_id, ''), platform, goal, style,
       duration, language, status, hooks, scripts, shotlist, voiceover, captions, ctas,
       objection_handling, ad_copy, credits_used, coalesce(error_message, ''), coalesce(job_id, ''),
       created_at, updated_at, completed_at`

const QInsertGeneration = `--sql 4d82f6a1-3c59-47e0-b8d2-91a04c7e5f36
insert into generations
    (id, team_id, user_id, brand_id, product_id, template_id, platform, goal, style, duration, language, status, created_at, updated_at)
values
    ($1, $2, $3, $4, nullif($5, ''), nullif($6, ''), $7, $8, $9, $10, $11, 'PENDING', now(), now());
`

const QGetGeneration = `--sql a1c7e904-68df-42b3-9f51-d72b0e84a6c9
select ` + generationColumns + `
from generations
where id = $1;
`

const QGetGenerationForTeam = `--sql f09b3d58-24a6-4e71-8c0d-65e1f92a7b43
select ` + generationColumns + `
from generations
where id = $1 and team_id = $2;
`

const QListGenerationsForTeam = `--sql 3e65a0d2-97c4-48fb-b1e8-40d9c2f6851a
select ` + generationColumns + `
from generations
where team_id = $1
order by created_at desc
limit $2;
`

const QMarkGenerationProcessing = `--sql d7f40b96-15e2-4a38-90c7-8b3da6e15f02
update generations
set status = 'PROCESSING', job_id = $2, updated_at = now()
where id = $1;
`

const QMarkGenerationFailed = `--sql 0b58c3e7-a924-4d60-bf15-7c2e98d4a631
update generations
set status = 'FAILED', error_message = $2, updated_at = now()
where id = $1;
`

const QSetGenerationJobID = `--sql 62d9f1b0-83ce-45a7-9e24-1f60adb5c798
update generations
set job_id = $2, updated_at = now()
where id = $1;
`

const QSetGenerationCreditsUsed = `--sql 9a0e6c48-d512-4bf9-8734-e65b20c1d9f7
update generations
set credits_used = $2, updated_at = now()
where id = $1;
`

const QCompleteGeneration = `--sql 17bc509e-46da-4082-a5f3-3d98e7c60b24
update generations
set hooks = $2, scripts = $3, shotlist = $4, voiceover = $5, captions = $6, ctas = $7,
    objection_handling = $8, ad_copy = $9, status = 'COMPLETED', error_message = null,
    completed_at = now(), updated_at = now()
where id = $1;
`

// One statement per output column keeps every query a static, lintable
// constant instead of interpolating column names at runtime.

const QSaveGenerationHooks = `--sql 84f2a6d9-0b31-4c58-97e6-52d0c8b4a1f3
update generations set hooks = $2, updated_at = now() where id = $1;
`

const QSaveGenerationScripts = `--sql b6e09c24-7d85-40a1-b3f9-0e64d2a7c518
update generations set scripts = $2, updated_at = now() where id = $1;
`

const QSaveGenerationShotlist = `--sql 5c3d81f6-92e0-4b47-a6d8-1b95e0c3f742
update generations set shotlist = $2, updated_at = now() where id = $1;
`

const QSaveGenerationVoiceover = `--sql e92b4d07-61af-483c-80b5-c4d7f2691e03
update generations set voiceover = $2, updated_at = now() where id = $1;
`

const QSaveGenerationCaptions = `--sql 28a5f9c1-d043-4e76-b928-6f1e0d85b3c4
update generations set captions = $2, updated_at = now() where id = $1;
`

const QSaveGenerationCTAs = `--sql 70d6e3b8-45c2-49fa-8d01-9a2c5e7f4b16
update generations set ctas = $2, updated_at = now() where id = $1;
`

const QSaveGenerationObjectionHandling = `--sql cd14a082-396e-4f5b-ae87-2d60b9f31c58
update generations set objection_handling = $2, updated_at = now() where id = $1;
`

const QSaveGenerationAdCopy = `--sql 4ab7d520-8e96-41c3-b0f4-67e2a9d58c01
update generations set ad_copy = $2, updated_at = now() where id = $1;
`
