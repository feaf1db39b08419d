// Copyright 2023 uhppoted@twyst.co.za. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package reshape fetches a table from a Google Sheets worksheet (or a local TSV, CSV, XLSX, JSON or SQLite file),
reshapes it between wide and long form and writes the result to a named worksheet or file.

sheets-reshape can be used from the command line or run from a cron job with a YAML jobs file.

sheets-reshape supports the following commands:

  - authorise, to authorise application access to Google Sheets
  - longer, to reshape a wide table to long form
  - wider, to reshape a long table to wide form
  - get, to download a Google Sheets worksheet range to a local file
  - put, to upload a local file to a Google Sheets worksheet
  - preview, to print a table from a worksheet or file
  - run, to run the reshaping jobs in a jobs file
  - revision, to display the latest revision of a spreadsheet
  - version
*/
package reshape
