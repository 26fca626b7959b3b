package help

const ColdstartYAML = `# taxi-report Quick Start

commands:
  count_pickups: |
    taxi-report aggregate --trips yellow_tripdata_2016-01.parquet --zones taxi_zone_lookup.csv --out pickups.tsv

  top_n: |
    taxi-report topn pickups.tsv        # top 20 (default)
    taxi-report topn pickups.tsv 10     # top 10
    taxi-report topn --top 5 --format yaml pickups.tsv
    taxi-report topn pickups.tsv --top 5  # flags may also follow the path

  profile: |
    taxi-report profile --trips yellow_tripdata_2016-01.parquet --zones taxi_zone_lookup.csv

report_format:
  line: "<key>\t<count>"
  malformed_lines: "skipped and logged to stderr (NOT_TWO_FIELDS, COUNT_NOT_INTEGER)"

exit_codes:
  0: "success, including an empty report (prints 'No data processed.')"
  1: "input file could not be opened"

config_file:
  path: "taxi-report.yaml (or --config)"
  keys: [top_n, label, format, trips_path, zones_path, report_path]
`
