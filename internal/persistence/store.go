// Package persistence saves and loads the graph engine's state to a
// SQLite-backed cache file. PRAGMA user_version stands in for the binary
// format's version byte; a mismatch is a BadCache error that sends the
// caller back to a fresh build, per the on-disk cache contract.
package persistence

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	anchorerrors "github.com/standardbeagle/anchor/internal/errors"
	"github.com/standardbeagle/anchor/internal/graph"
	"github.com/standardbeagle/anchor/internal/types"
)

// SchemaVersion is bumped whenever the on-disk table shapes change.
const SchemaVersion = 1

const schemaDDL = `
CREATE TABLE IF NOT EXISTS nodes (
	handle       INTEGER PRIMARY KEY,
	kind         TEXT NOT NULL,
	name         TEXT NOT NULL,
	file_path    TEXT NOT NULL,
	line_start   INTEGER NOT NULL,
	line_end     INTEGER NOT NULL,
	code_snippet TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS edges (
	id       INTEGER PRIMARY KEY,
	from_handle INTEGER NOT NULL,
	to_handle   INTEGER NOT NULL,
	kind        TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS calls (
	id          INTEGER PRIMARY KEY,
	caller      INTEGER NOT NULL,
	target      INTEGER NOT NULL,
	name        TEXT NOT NULL,
	file_path   TEXT NOT NULL,
	line        INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_edges_from ON edges(from_handle);
CREATE INDEX IF NOT EXISTS idx_edges_to ON edges(to_handle);
CREATE INDEX IF NOT EXISTS idx_nodes_name ON nodes(name);
CREATE INDEX IF NOT EXISTS idx_nodes_file ON nodes(file_path);
`

// Save writes g's live content to a fresh SQLite database at path,
// atomically: the database is built at path+".tmp" and renamed into place
// so an interrupted save can never leave a truncated cache behind.
func Save(path string, g *graph.Graph) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &anchorerrors.Io{Path: path, Detail: "create cache directory", Err: err}
	}

	tmpPath := path + ".tmp"
	_ = os.Remove(tmpPath)

	db, err := sql.Open("sqlite3", tmpPath)
	if err != nil {
		return &anchorerrors.Io{Path: tmpPath, Detail: "open temp cache", Err: err}
	}
	defer db.Close()

	if err := writeAll(db, g); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := db.Close(); err != nil {
		os.Remove(tmpPath)
		return &anchorerrors.Io{Path: tmpPath, Detail: "close temp cache", Err: err}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return &anchorerrors.Io{Path: path, Detail: "rename temp cache into place", Err: err}
	}
	return nil
}

func writeAll(db *sql.DB, g *graph.Graph) error {
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)); err != nil {
		return &anchorerrors.Io{Detail: "set schema version", Err: err}
	}
	if _, err := db.Exec(schemaDDL); err != nil {
		return &anchorerrors.Io{Detail: "create cache schema", Err: err}
	}

	nodes, edges, calls := g.Export()

	tx, err := db.Begin()
	if err != nil {
		return &anchorerrors.Io{Detail: "begin cache transaction", Err: err}
	}
	defer tx.Rollback()

	nodeStmt, err := tx.Prepare("INSERT INTO nodes (handle, kind, name, file_path, line_start, line_end, code_snippet) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return &anchorerrors.Io{Detail: "prepare node insert", Err: err}
	}
	defer nodeStmt.Close()
	for _, n := range nodes {
		if _, err := nodeStmt.Exec(n.Handle, string(n.Kind), n.Name, n.FilePath, n.LineStart, n.LineEnd, n.CodeSnippet); err != nil {
			return &anchorerrors.Io{Detail: "insert node", Err: err}
		}
	}

	edgeStmt, err := tx.Prepare("INSERT INTO edges (from_handle, to_handle, kind) VALUES (?, ?, ?)")
	if err != nil {
		return &anchorerrors.Io{Detail: "prepare edge insert", Err: err}
	}
	defer edgeStmt.Close()
	for _, e := range edges {
		if _, err := edgeStmt.Exec(e.From, e.To, string(e.Kind)); err != nil {
			return &anchorerrors.Io{Detail: "insert edge", Err: err}
		}
	}

	callStmt, err := tx.Prepare("INSERT INTO calls (caller, target, name, file_path, line) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return &anchorerrors.Io{Detail: "prepare call insert", Err: err}
	}
	defer callStmt.Close()
	for _, c := range calls {
		if _, err := callStmt.Exec(c.Caller, c.Target, c.Name, c.FilePath, c.Line); err != nil {
			return &anchorerrors.Io{Detail: "insert call", Err: err}
		}
	}

	return tx.Commit()
}

// Load reads the cache at path and reconstructs a graph. A missing schema
// version or a mismatch against SchemaVersion is reported as BadCache so
// the caller can fall back to a fresh build.
func Load(path string) (*graph.Graph, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &anchorerrors.Io{Path: path, Detail: "cache file not found", Err: err}
	}

	db, err := sql.Open("sqlite3", path+"?mode=ro")
	if err != nil {
		return nil, &anchorerrors.Io{Path: path, Detail: "open cache", Err: err}
	}
	defer db.Close()

	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return nil, &anchorerrors.BadCache{Detail: "read schema version", Err: err}
	}
	if version != SchemaVersion {
		return nil, &anchorerrors.BadCache{Detail: fmt.Sprintf("schema version %d does not match %d", version, SchemaVersion)}
	}

	nodes, err := readNodes(db)
	if err != nil {
		return nil, &anchorerrors.BadCache{Detail: "read nodes", Err: err}
	}
	edges, err := readEdges(db)
	if err != nil {
		return nil, &anchorerrors.BadCache{Detail: "read edges", Err: err}
	}
	calls, err := readCalls(db)
	if err != nil {
		return nil, &anchorerrors.BadCache{Detail: "read calls", Err: err}
	}

	return graph.Restore(nodes, edges, calls), nil
}

func readNodes(db *sql.DB) ([]graph.NodeRecord, error) {
	rows, err := db.Query("SELECT handle, kind, name, file_path, line_start, line_end, code_snippet FROM nodes")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []graph.NodeRecord
	for rows.Next() {
		var nr graph.NodeRecord
		var kind string
		if err := rows.Scan(&nr.Handle, &kind, &nr.Name, &nr.FilePath, &nr.LineStart, &nr.LineEnd, &nr.CodeSnippet); err != nil {
			return nil, err
		}
		nr.Kind = types.NodeKind(kind)
		out = append(out, nr)
	}
	return out, rows.Err()
}

func readEdges(db *sql.DB) ([]graph.EdgeRecord, error) {
	rows, err := db.Query("SELECT from_handle, to_handle, kind FROM edges")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []graph.EdgeRecord
	for rows.Next() {
		var er graph.EdgeRecord
		var kind string
		if err := rows.Scan(&er.From, &er.To, &kind); err != nil {
			return nil, err
		}
		er.Kind = types.EdgeKind(kind)
		out = append(out, er)
	}
	return out, rows.Err()
}

func readCalls(db *sql.DB) ([]graph.CallRecord, error) {
	rows, err := db.Query("SELECT caller, target, name, file_path, line FROM calls")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []graph.CallRecord
	for rows.Next() {
		var cr graph.CallRecord
		if err := rows.Scan(&cr.Caller, &cr.Target, &cr.Name, &cr.FilePath, &cr.Line); err != nil {
			return nil, err
		}
		out = append(out, cr)
	}
	return out, rows.Err()
}
