/*
Command mcc computes Matthews correlation coefficient on lccorr results.

Matthews correlation coefficient is a statistic indicating how well
a classifier works.  Here, we are testing how successfully lccorr
classifies objects as stellar.  Compared to similar statistics, MCC
produces a meaningful measure even when the relative number of objects
in the classes (variable stars and extragalactic transients, for example)
is greatly different.

  Usage: mcc [options] <in-class> <out-of-class> [threshold]
    -c, --column=7: column containing class score
    -v, --version: display version and copyright

The command line arguments <in-class> and <out-of-class> are files containing
captured output of lccorr run.  Prepare these two files as follows:

1.  Collect alerts of objects for which you know the truth, stellar or not,
for example from a spectroscopically classified sample.

2.  Partition the alerts into two files, one file for objects known to be
stellar and the other file for objects known not to be.

3.  Run lccorr run on the two alert files, capturing an output file for
each.  These output files become the ones you specify on the mcc command
line.

The mcc -c option identifies the output column containing the class of
interest.  The default is 7, the stellar column of lccorr output, where
"yes" reads as 1 and "no" as 0.  Numeric columns work too; to test a color
cut on g-r, for example, specify -c=8 and a threshold.

The optional threshold argument specifies the threshold you use for predicting
if an object is in the class or not.  The default is 0.5, meaning that
a score of 0.5 or higher is a prediction that the object is in the class.

mcc ignores lines where it does not find a score in the specified column,
such as the heading line.

-------------
Public domain.
*/
package main
