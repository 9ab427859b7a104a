/*
 * doc.go, part of gohelix.
 *
 * Copyright 2024 The gohelix authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

/*Package helix is the main package of the goHelix library. It provides the data model shared by the
analyses of DNA helical parameters obtained with Curves+/Canal from molecular dynamics trajectories.



	**goHelix Capabilities**


    Reads Canal .ser time series and per-coordinate CSV tables, plain or compressed
	(package ser).

    Labels columns with the base, base pair or base-pair step they belong to, from the
	sequences of both strands.

    Computes averages, standard deviations, covariances and stiffness constants, both for one
	parameter along the sequence and for the six coupled coordinates of one step (package helstat).

    Correlates helical parameters, using linear, circular or circular-linear statistics
	as needed (package helstat).

    Detects bimodal parameters by fitting Gaussian mixtures and applying the Bayes factor
	and Helguero's separation criterion (package bimodal).

    Classifies backbone conformations: BI/BII, canonical alpha/gamma and sugar puckering
	(package backbone).

    Plots all of the above using gonum/plot (package helplot) and runs complete analyses
	from a YAML configuration (packages blocks and cmd/helpar).


A Table holds one helical parameter for a set of positions: each row is a snapshot and each
column a base, base pair or base-pair step. Analyses work on whole columns, so Tables are stored
column-major. The Dense method returns the row-major gonum matrix that gonum/stat expects.

Helical parameters are described by the Parameter type, which knows whether the parameter
is an angle or a distance and whether it is defined on bases or on base-pair steps.*/
package helix
