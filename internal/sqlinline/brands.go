package sqlinline

const QGetBrand = `--sql 36e8d1a4-50c7-4f29-b6e3-8a1d94f0c265
select id, team_id, name, coalesce(industry, ''), coalesce(target_audience, ''),
       coalesce(tonality, '{}'), coalesce(usps, '{}'), coalesce(no_gos, '{}'), created_at
from brands
where id = $1;
`

const QGetProduct = `--sql 829f4c60-1db3-4a85-9e72-d05c6b3f8e14
select id, brand_id, name, coalesce(description, ''), coalesce(price, ''),
       coalesce(benefits, '{}'), coalesce(objections, '{}'), coalesce(reviews, '{}'), created_at
from products
where id = $1;
`

const QGetTeam = `--sql 0c52ab87-e649-4d13-9b80-7f3e1a264d95
select id, name, credits, created_at
from teams
where id = $1;
`
