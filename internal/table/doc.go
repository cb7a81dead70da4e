// Package table provides replacement tables for the substitution engine.
//
// The built-in table (Builtin) carries the dashboard labels. External tables
// can be loaded from YAML or CUE files; in both formats the table is a list
// under the top-level "pairs" field and list order is application order:
//
//	pairs:
//	  - match: "Bitcoin Analysis Done"
//	    replacement: "比特幣投資分析完成"
//	  - match: "Bitcoin"
//	    replacement: "比特幣"
//
// or, in CUE:
//
//	pairs: [
//		{match: "Bitcoin Analysis Done", replacement: "比特幣投資分析完成"},
//		{match: "Bitcoin", replacement: "比特幣"},
//	]
//
// Digest identifies a table by content and order. Lint reports entries that
// an earlier entry can prevent from ever matching; it never reorders.
package table
