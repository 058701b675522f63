// Command stockroom manages a small product catalog from the terminal.
//
//	stockroom add --name Laptop --price 1000 --stock 20
//	stockroom update 1 --price 1200 --stock 25
//	stockroom sale 1 2
//	stockroom low-stock            # products under LOW_STOCK_THRESHOLD (10)
//	stockroom report
//	stockroom remove 2
//	stockroom export --disk s3     # JSON snapshot to local disk or S3
//	stockroom demo                 # in-memory walkthrough
//
// The catalog lives in the store named by --store or CATALOG_STORE: "sql"
// (sqlite file inventory.db by default; postgres, mysql and sqlserver via
// DB_DRIVER), "redis", or "memory".
//
// Database housekeeping:
//
//	stockroom migrate
//	stockroom migrate:rollback
//	stockroom migrate:status
//	stockroom seed
package main
