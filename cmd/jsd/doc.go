// 14 Oct 2026
/*

jsd calculates the distance between two k-mer distributions using the
Jensen-Shannon divergence (JSD), with base 2 logarithms, so the answer
is between 0 (identical) and 1 (nothing in common).

Usage:
 jsd -f first.ffp -s second.ffp [options]

Flags:
  -f file
    	First profile.
  -s file
    	Second profile.
  -o file
    	Output file, default JSD_out.txt. "-" means standard output only.
  -t N
    	Number of threads for the summation. The result does not depend on it.
  -c file
    	Write a csv file with p, q, the mixture and the contribution of
    	each key.
  -config file
    	yaml file with defaults, keys outfile, threads, contrib, verbose, quiet.
  -verbose, -q
    	More or less logging on standard error.
  -h, -v
    	Help and version.

Each profile has "Sequence Frequency" format, one key and a count per line
  AACGT 12
  AACGG 3
Lines which do not look like this are skipped. If a key turns up twice,
the last count is used. Profiles may be gzip compressed.

The result is written to standard output and to the output file as
  JSD value=0.311278
*/
package main
