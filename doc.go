/*
Command lccorr corrects ZTF difference image photometry for the flux of the
reference source and summarizes the resulting light curves.

Contents

  Program overview
  Command line usage
  Configuration
  Input format
  Output
  Algorithm outline


Program overview

Input is a stream of ZTF alert packets, one JSON object per line.  Output
is a line per object on standard output and, optionally, four tables in
a SQLite database: corrected detections, per band statistics (magstats),
per object statistics (objstats) and rise rates from non-detections (dmdt).

A ZTF alert measures the flux difference between a science image and a
reference image.  When the alert is close to a source in the reference
image, the magnitude of the object itself is recovered by adding or
subtracting the difference flux to the reference source flux.  lccorr
applies this correction, flags detections where it is doubtful, and
classifies objects as stellar from the reference source and PanSTARRS
cross match fields carried by the alert.


Command line usage

  lccorr run [options] <alerts.jsonl>    process alerts in file
  lccorr run [options] -                 process alerts from stdin
  lccorr correct --magnr m --magpsf m --sigmagnr s --sigmapsf s [--isdiffpos t]
                                         correct a single magnitude
  lccorr version                         display version and copyright

Options of run:

  --dt-min <days>           non-detections this close before the first
                            detection are skipped for dm/dt (0.5)
  --flags                   compute diffpos, reference change and
                            saturation rate (true)
  --step-id <id>            step id recorded in objstats
  --workers <n>             objects solved concurrently, 0 for one per CPU
  --fail-fast               stop at the first object that fails
  --skip-invalid            log and skip invalid alert packets
  --store <file>            SQLite database for the result tables
  --metrics-textfile <file> write Prometheus metrics when done

Global options:

  --config <file>           config file, default ./lccorr.yaml if present
  --log-level <level>       debug, info, warn or error
  --log-format <format>     text or json

Logs go to standard error.


Configuration

Every option can also be set in the YAML config file or in the environment.
Keys are

  correction.dt_min  correction.flags  correction.step_id
  driver.workers     driver.fail_fast  ingest.skip_invalid
  store.path         metrics.textfile  log.level  log.format

An environment variable is the key upper cased with dots replaced by
underscores and prefixed with LCCORR_, for example LCCORR_DRIVER_WORKERS.
Command line flags take precedence over the environment, which takes
precedence over the config file.


Input format

Each line is an alert packet with fields objectId, candid, candidate and
prv_candidates.  The candidate and each previous candidate carry the
ZTF candidate fields jd, fid, candid, magpsf, sigmapsf, magap, sigmagap,
magnr, sigmagnr, distnr, isdiffpos, distpsnr1, sgscore1, chinr, sharpnr,
rfid, jdendref, ndethist, ncovhist, jdstarthist, jdendhist, ra, dec,
diffmaglim and rb.  Null or missing numeric fields are read as NaN.

A previous candidate with a null candid and a diffmaglim is a non-detection.
Alerts of an object repeat its history; repeated detections are kept once
by candid, repeated non-detections once by object, band and date.  Julian
dates are converted to modified Julian dates.


Output

The report has a line per successfully processed object:

  object        ndet  RA            Dec            sRA"   sDec"  deltamjd stellar  g-r

RA and Dec are mean positions, sRA and sDec their scatter in arc seconds.
g-r is the mean color, from corrected magnitudes where available.  Objects
that fail, for example on an unrecognized isdiffpos, are logged and left
out; the others are unaffected.  When only some bands of an object fail,
the database still gets the detections, magstats and dmdt rows of the
other bands, but no objstats row.

In the database NaN is stored as NULL.  A correction where the difference
flux cancels the reference flux is stored as magnitude 100.


Algorithm outline

For reference magnitude magnr and difference magnitude magpsf, with
fluxes f_nr and f_psf and the sign s of the subtraction,

  f = f_nr + s*f_psf
  mag = -2.5 log10(f)
  sigma = sqrt(f_psf² sigmapsf² - f_nr² sigmagnr²) / f
  sigma_ext = f_psf sigmapsf / f

Correction is attempted when distnr < 1.4 arc seconds.  A detection is
dubious when it disagrees with the first detection (lowest candid) of its
band about being corrected, or is an uncorrected negative subtraction.

Per band statistics use first and last detections by date.  dm/dt compares
the first detection with each earlier non-detection, skipping those within
dt-min days, and keeps the steepest possible rise.

Objects are processed concurrently.  Output order and content do not depend
on the number of workers.

-------------
Public domain.
*/
package main
